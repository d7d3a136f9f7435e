package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/color-tools/api/colorcode"
	"github.com/color-tools/api/textkit"
	"github.com/color-tools/api/units"
)

// Helper function to get caller information
func getCallerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "[unknown]"
	}
	return fmt.Sprintf("[%s:%d]", filepath.Base(file), line)
}

type HandlerError struct {
	ErrorName        string `json:"errorName"`
	Description      string `json:"description"`
	PossibleSolution string `json:"possibleSolution"`
	CallerInfo       string `json:"callerInfo"`
}

var ErrGET = fmt.Errorf("GET method required for this endpoint")
var ErrPOST = fmt.Errorf("POST method required for this endpoint")
var ErrGETOrPOST = fmt.Errorf("GET or POST method required for this endpoint")
var ErrPUT = fmt.Errorf("PUT method required for this endpoint")
var ErrDELETE = fmt.Errorf("DELETE method required for this endpoint")
var ErrInvalidPrivelege = fmt.Errorf("invalid authentication privileges")

func writeHandlerError(w http.ResponseWriter, status int, handlerErr HandlerError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handlerErr)
}

func (app *Application) invalidCredentials(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusUnauthorized, HandlerError{
		ErrorName:        "Error Authorizing User",
		Description:      err.Error(),
		PossibleSolution: "Retry with proper credentials",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) invalidAuthorization(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusUnauthorized, HandlerError{
		ErrorName:        "Error Authenticating for Endpoint",
		Description:      "Invalid Authentication",
		PossibleSolution: "Check your headers and ensure you're submitting a valid token",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) forbidden(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusForbidden, HandlerError{
		ErrorName:        "Forbidden",
		Description:      err.Error(),
		PossibleSolution: "This endpoint requires admin privileges",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) methodNotAllowed(w http.ResponseWriter, r *http.Request, method string, err error) {
	w.Header().Set("Allow", method)
	writeHandlerError(w, http.StatusMethodNotAllowed, HandlerError{
		ErrorName:        method + " Method Required",
		Description:      err.Error() + " you used: " + r.Method,
		PossibleSolution: "Use " + method + " method",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) requireGetMethod(w http.ResponseWriter, r *http.Request, err error) {
	app.methodNotAllowed(w, r, http.MethodGet, err)
}

func (app *Application) requirePostMethod(w http.ResponseWriter, r *http.Request, err error) {
	app.methodNotAllowed(w, r, http.MethodPost, err)
}

func (app *Application) requirePutMethod(w http.ResponseWriter, r *http.Request, err error) {
	app.methodNotAllowed(w, r, http.MethodPut, err)
}

func (app *Application) requireDeleteMethod(w http.ResponseWriter, r *http.Request, err error) {
	app.methodNotAllowed(w, r, http.MethodDelete, err)
}

func (app *Application) badJSONRequest(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Error Parsing JSON",
		Description:      err.Error(),
		PossibleSolution: "Double check your JSON formatting",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusInternalServerError, HandlerError{
		ErrorName:        "Internal Server Error",
		Description:      err.Error(),
		PossibleSolution: "Internal Server Error requiring support",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) userAlreadyExists(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusConflict, HandlerError{
		ErrorName:        "User Exists",
		Description:      err.Error(),
		PossibleSolution: "Advise user to login with their credentials",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) notFound(w http.ResponseWriter, r *http.Request, err error) {
	writeHandlerError(w, http.StatusNotFound, HandlerError{
		ErrorName:        "Not Found",
		Description:      err.Error(),
		PossibleSolution: "Check the identifier in your request",
		CallerInfo:       getCallerInfo(),
	})
}

func (app *Application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	solution := "Check your request parameters"
	switch {
	case errors.Is(err, colorcode.ErrInvalidColorFormat):
		solution = "Send a hex color such as #3357ff or f00"
	case errors.Is(err, units.ErrUnknownCategory), errors.Is(err, units.ErrUnknownUnit):
		solution = "List valid categories and units with GET /v1/tools/units"
	case errors.Is(err, textkit.ErrUnknownCase):
		solution = "Use one of the cases listed in the error description"
	case errors.Is(err, textkit.ErrUnknownLoremType):
		solution = "Use type paragraphs, sentences or words"
	case errors.Is(err, textkit.ErrLoremCount):
		solution = "Lower the count; paragraphs allow 50, sentences 200 and words 1000"
	}
	writeHandlerError(w, http.StatusBadRequest, HandlerError{
		ErrorName:        "Bad Request",
		Description:      err.Error(),
		PossibleSolution: solution,
		CallerInfo:       getCallerInfo(),
	})
}
