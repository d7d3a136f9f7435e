package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/color-tools/api/datastore"
	"github.com/color-tools/api/models"
)

var errPaletteNotFound = errors.New("palette not found")

// GET|POST /v1/palettes - List or create the current user's palettes
func (app *Application) palettes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		app.listPalettes(w, r)
	case http.MethodPost:
		app.createPalette(w, r)
	default:
		app.methodNotAllowed(w, r, http.MethodGet+", "+http.MethodPost, ErrGETOrPOST)
	}
}

func (app *Application) listPalettes(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r)

	palettes, err := app.PaletteRepo.GetByUser(user.UserID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	responses := make([]models.PaletteResponse, 0, len(palettes))
	for _, p := range palettes {
		resp, err := models.NewPaletteResponse(p, app.Converter)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		responses = append(responses, resp)
	}

	writeJSON(w, http.StatusOK, responses)
}

func (app *Application) createPalette(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r)

	req := &models.CreatePaletteRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	palette, err := models.NewPalette(user.UserID, *req)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	saved, err := app.PaletteRepo.Create(palette)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp, err := models.NewPaletteResponse(saved, app.Converter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GET /v1/palettes/get?id=
func (app *Application) getPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	user, _ := userFromContext(r)
	palette, err := app.PaletteRepo.Get(r.URL.Query().Get("id"))
	if datastore.IsNoRows(err) || (err == nil && palette.UserID != user.UserID) {
		app.notFound(w, r, errPaletteNotFound)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp, err := models.NewPaletteResponse(palette, app.Converter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// DELETE /v1/palettes/delete?id=
func (app *Application) deletePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		app.requireDeleteMethod(w, r, ErrDELETE)
		return
	}

	user, _ := userFromContext(r)
	err := app.PaletteRepo.Delete(r.URL.Query().Get("id"), user.UserID)
	if datastore.IsNoRows(err) {
		app.notFound(w, r, errPaletteNotFound)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
