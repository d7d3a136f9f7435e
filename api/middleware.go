package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/color-tools/api/models"
)

type contextKey string

const userContextKey = contextKey("user")

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

// getUserFromJWT resolves the user behind the access token cookie
func (app *Application) getUserFromJWT(r *http.Request) (models.User, error) {
	cookie, err := r.Cookie(models.JWT.ACCESS_COOKIE_NAME)
	if err != nil {
		return models.User{}, errors.New("no JWT cookie found")
	}

	claims, err := models.ValidateJWTToken(cookie.Value, app.Config.JwtSecret)
	if err != nil {
		return models.User{}, err
	}
	if claims.Scope != models.ScopeAuthentication {
		return models.User{}, errors.New("invalid token claims")
	}

	// Verify device still exists and is valid
	device, err := app.UserRepo.GetDeviceByFingerprint(claims.UserID, claims.DeviceFingerprint)
	if err != nil {
		return models.User{}, errors.New("device not found")
	}

	if time.Now().After(device.Expiry) {
		return models.User{}, errors.New("device expired")
	}

	return app.UserRepo.Get(claims.UserID)
}

// userFromContext returns the user stored by authenticate
func userFromContext(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(models.User)
	return user, ok
}

// authenticate that the user exists
func (app *Application) authenticate(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := app.getUserFromJWT(r)
		if err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		if !user.Approved {
			app.invalidAuthorization(w, r, errors.New("user not approved"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		h.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Verify user has Admin permissions
func (app *Application) verifyPermissions(h http.HandlerFunc) http.HandlerFunc {
	return app.authenticate(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userFromContext(r)
		if user.Kind != models.Admin {
			app.forbidden(w, r, ErrInvalidPrivelege)
			return
		}

		h.ServeHTTP(w, r)
	})
}
