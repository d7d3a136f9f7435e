package api

import (
	"errors"
	"math/rand/v2"
	"net/http"

	"github.com/color-tools/api/colorcode"
	"github.com/color-tools/api/datastore"
	"github.com/color-tools/api/models"
)

const maxDailyColors = 366

// parseHexParam reads and parses the query parameter key
func parseHexParam(r *http.Request, key string) (colorcode.Color, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return colorcode.Color{}, errors.New("query parameter " + key + " is required")
	}
	return colorcode.ParseHex(value)
}

// GET /v1/colors/convert?hex=3357ff
func (app *Application) convertColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	c, err := parseHexParam(r, "hex")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewColorCodeResponse(app.Converter.Code(c), c))
}

// GET /v1/colors/name?hex=3357ff
func (app *Application) colorName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	c, err := parseHexParam(r, "hex")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ColorNameResponse{
		Input: c.Hex(),
		Match: app.Converter.Names.Nearest(c),
	})
}

// GET /v1/colors/contrast?fg=000&bg=fff
func (app *Application) colorContrast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	fg, err := parseHexParam(r, "fg")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	bg, err := parseHexParam(r, "bg")
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	ratio := colorcode.ContrastRatio(fg, bg)
	writeJSON(w, http.StatusOK, models.ContrastResponse{
		Foreground: fg.Hex(),
		Background: bg.Hex(),
		Ratio:      ratio,
		AA:         ratio >= models.ContrastAA,
		AAA:        ratio >= models.ContrastAAA,
	})
}

// GET /v1/colors/random - Get a random color
func (app *Application) getRandomColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	v := rand.IntN(1 << 24)
	c := colorcode.FromRGB(uint8(v>>16), uint8(v>>8), uint8(v))

	writeJSON(w, http.StatusOK, models.NewColorCodeResponse(app.Converter.Code(c), c))
}

// GET /v1/colors/daily - Get today's daily color
func (app *Application) getDailyColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	dailyColor, err := app.DailyColorRepo.GetToday()
	if datastore.IsNoRows(err) {
		app.notFound(w, r, errors.New("no daily color has been generated for today"))
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewDailyColorResponse(dailyColor))
}

// GET /v1/colors/daily/all - Get past daily colors, newest first
func (app *Application) getAllDailyColors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	dailyColors, err := app.DailyColorRepo.GetRecent(maxDailyColors)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	responses := make([]models.DailyColorResponse, 0, len(dailyColors))
	for _, dc := range dailyColors {
		responses = append(responses, models.NewDailyColorResponse(dc))
	}

	writeJSON(w, http.StatusOK, responses)
}

// POST /v1/admin/colors/generate - Manually generate today's color (Admin only)
func (app *Application) generateDailyColor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	if app.Scheduler == nil {
		app.internalServerError(w, r, errors.New("daily color scheduler is not configured"))
		return
	}

	dailyColor, err := app.Scheduler.GenerateDailyColor()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Daily color ready for " + dailyColor.Date.Format("2006-01-02"),
		"color":   models.NewDailyColorResponse(dailyColor),
	})
}
