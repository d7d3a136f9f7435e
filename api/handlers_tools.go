package api

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/color-tools/api/models"
	"github.com/color-tools/api/textkit"
	"github.com/color-tools/api/units"
)

// maxTextBytes bounds request bodies of the text tools
const maxTextBytes = 1 << 20

const defaultMaxUUIDBatch = 1000

// GET /v1/tools/units - List unit categories
func (app *Application) getUnitCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	writeJSON(w, http.StatusOK, units.Categories())
}

// POST /v1/tools/units/convert
func (app *Application) convertUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.UnitConversionRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	results, err := units.Convert(req.Category, req.From, req.Value)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UnitConversionResponse{
		Category: req.Category,
		From:     req.From,
		Value:    req.Value,
		Results:  results,
	})
}

// GET /v1/tools/uuid?count=10
func (app *Application) generateUUIDs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	limit := app.Config.MaxUUIDBatch
	if limit <= 0 {
		limit = defaultMaxUUIDBatch
	}

	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > limit {
			app.badRequest(w, r, fmt.Errorf("count must be an integer between 1 and %d", limit))
			return
		}
		count = n
	}

	ids := make([]models.UUIDFormats, 0, count)
	for i := 0; i < count; i++ {
		id, err := uuid.NewRandom()
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		ids = append(ids, models.NewUUIDFormats(id))
	}

	writeJSON(w, http.StatusOK, ids)
}

// POST /v1/tools/text/case
func (app *Application) convertTextCase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.TextCaseRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTextBytes)).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	result, err := textkit.Convert(req.Text, req.Case)
	if err != nil {
		app.badRequest(w, r, fmt.Errorf("%w (valid: %s)", err, strings.Join(textkit.Cases, ", ")))
		return
	}

	writeJSON(w, http.StatusOK, models.TextCaseResponse{Case: req.Case, Result: result})
}

// POST /v1/tools/text/stats
func (app *Application) textStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.TextStatsRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTextBytes)).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, textkit.Analyze(req.Text))
}

// POST /v1/tools/text/diff
func (app *Application) diffText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := &models.TextDiffRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTextBytes)).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewTextDiffResponse(textkit.DiffLines(req.Before, req.After)))
}

// GET /v1/tools/lorem?type=paragraphs&count=5
func (app *Application) generateLorem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = textkit.DefaultLoremType
	}

	count := textkit.DefaultLoremCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			app.badRequest(w, r, fmt.Errorf("%w: count must be an integer", textkit.ErrLoremCount))
			return
		}
		count = n
	}

	text, err := textkit.NewLorem(rand.Uint64()).Generate(kind, count)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoremResponse{Type: kind, Count: count, Text: text})
}
