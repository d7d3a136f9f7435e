package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/color-tools/api/datastore"
	"github.com/color-tools/api/models"
)

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Color Tools API")
}

// POST /v1/auth/signup
func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	userSignup := &models.UserSignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(userSignup); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if err := userSignup.Validate(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if _, err := app.UserRepo.GetUserByEmail(userSignup.Email); err == nil {
		app.userAlreadyExists(w, r, errors.New("there is already a user with this email address"))
		return
	} else if !datastore.IsNoRows(err) {
		app.internalServerError(w, r, err)
		return
	}

	if _, err := app.UserRepo.GetUserByUsername(userSignup.Username); err == nil {
		app.userAlreadyExists(w, r, errors.New("username already taken"))
		return
	} else if !datastore.IsNoRows(err) {
		app.internalServerError(w, r, err)
		return
	}

	newUser, newUserErr := models.NewUser(*userSignup)
	if newUserErr != nil {
		app.internalServerError(w, r, newUserErr)
		return
	}

	storedUser, errStoringNewUser := app.UserRepo.Create(newUser)
	if errStoringNewUser != nil {
		app.internalServerError(w, r, errStoringNewUser)
		return
	}

	writeJSON(w, http.StatusCreated, storedUser)
}

func (app *Application) setTokenCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	sameSite := http.SameSiteStrictMode
	if app.Config.JwtDomain == "" {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
		Domain:   app.Config.JwtDomain,
		Expires:  expires,
	})
}

// POST /v1/auth/login
func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	creds := &models.Credentials{}
	if err := json.NewDecoder(r.Body).Decode(creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if creds.DeviceFingerprint == "" {
		app.badRequest(w, r, errors.New("deviceFingerprint is required"))
		return
	}

	user, err := app.UserRepo.ValidateAndGetUser(*creds)
	if err != nil {
		app.invalidCredentials(w, r, errors.New("invalid email or password"))
		return
	}

	if !user.Approved {
		app.invalidCredentials(w, r, errors.New("user not yet approved"))
		return
	}

	// The device record lives as long as the refresh token
	deviceExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtRefreshDuration))
	device := models.UserDevice{
		UserID:      user.UserID,
		Fingerprint: creds.DeviceFingerprint,
		DeviceData:  r.Header.Get("User-Agent"),
		Expiry:      deviceExpiry,
	}

	if err := app.UserRepo.CreateDevice(device); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	accessExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration))
	accessToken, err := models.NewJWTClaims(user, creds.DeviceFingerprint, models.ScopeAuthentication,
		models.JWT.ACCESS_COOKIE_NAME, accessExpiry).Sign(app.Config.JwtSecret)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	refreshToken, err := models.NewJWTClaims(user, creds.DeviceFingerprint, models.ScopeRefresh,
		models.JWT.REFRESH_COOKIE_NAME, deviceExpiry).Sign(app.Config.JwtSecret)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.setTokenCookie(w, models.JWT.ACCESS_COOKIE_NAME, accessToken, accessExpiry)
	app.setTokenCookie(w, models.JWT.REFRESH_COOKIE_NAME, refreshToken, deviceExpiry)

	writeJSON(w, http.StatusOK, user)
}

// POST /v1/auth/logout
func (app *Application) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	cookie, err := r.Cookie(models.JWT.ACCESS_COOKIE_NAME)
	if err == nil {
		if claims, err := models.ValidateJWTToken(cookie.Value, app.Config.JwtSecret); err == nil {
			device, err := app.UserRepo.GetDeviceByFingerprint(claims.UserID, claims.DeviceFingerprint)
			if err == nil {
				if err := app.UserRepo.DeleteDevice(device.ID); err != nil {
					app.internalServerError(w, r, err)
					return
				}
			}
		}
	}

	expired := time.Unix(0, 0)
	app.setTokenCookie(w, models.JWT.ACCESS_COOKIE_NAME, "", expired)
	app.setTokenCookie(w, models.JWT.REFRESH_COOKIE_NAME, "", expired)
	w.WriteHeader(http.StatusNoContent)
}

// GET /v1/users/me - Get current authenticated user
func (app *Application) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	user, _ := userFromContext(r)
	writeJSON(w, http.StatusOK, user)
}

// PUT /v1/users/me/update - Update current authenticated user
func (app *Application) updateCurrentUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		app.requirePutMethod(w, r, ErrPUT)
		return
	}

	currentUser, _ := userFromContext(r)

	updateReq := &models.UserUpdateRequest{}
	if err := json.NewDecoder(r.Body).Decode(updateReq); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if err := models.ValidateUsername(updateReq.Username); err != nil {
		app.badRequest(w, r, err)
		return
	}
	if err := models.ValidateEmail(updateReq.Email); err != nil {
		app.badRequest(w, r, err)
		return
	}

	if other, err := app.UserRepo.GetUserByUsername(updateReq.Username); err == nil && other.UserID != currentUser.UserID {
		app.userAlreadyExists(w, r, errors.New("username already taken"))
		return
	}
	if other, err := app.UserRepo.GetUserByEmail(updateReq.Email); err == nil && other.UserID != currentUser.UserID {
		app.userAlreadyExists(w, r, errors.New("there is already a user with this email address"))
		return
	}

	currentUser.Username = updateReq.Username
	currentUser.Email = updateReq.Email

	updatedUser, updateErr := app.UserRepo.Update(currentUser)
	if updateErr != nil {
		app.internalServerError(w, r, updateErr)
		return
	}

	writeJSON(w, http.StatusOK, updatedUser)
}

// GET /v1/users - Get all users
func (app *Application) getAllUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	users, retrieveErr := app.UserRepo.GetAllUsers()
	if retrieveErr != nil {
		app.internalServerError(w, r, retrieveErr)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
