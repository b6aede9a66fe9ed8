// cmd/api/users.go
// HTTP request handlers for registration, login and the current-user echo.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookcatalog/internal/auth"
	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/validator"
)

// registerUserHandler handles POST /v1/users.
// The password is supplied twice and must satisfy the policy checked by
// data.ValidatePassword before it is bcrypt-hashed and stored.
func (app *applicationDependencies) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username  string `json:"username"`
		Password1 string `json:"password_1"`
		Password2 string `json:"password_2"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateUsername(v, input.Username)
	data.ValidatePassword(v, input.Password1)
	v.Check(input.Password1 == input.Password2, "password_2", "passwords do not match")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	hash, err := auth.HashPassword(input.Password1)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	user, err := app.models.Users.Insert(input.Username, hash)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateUsername):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createAuthenticationTokenHandler handles POST /v1/tokens/authentication.
// A valid username/password pair yields a signed bearer token carrying the
// user's id, username and admin flag.
func (app *applicationDependencies) createAuthenticationTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, hash, err := app.models.Users.GetByUsername(input.Username)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = auth.CheckPassword(input.Password, hash)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			app.invalidCredentialsResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	token, err := auth.SignToken([]byte(app.config.jwt.secret), user.ID, user.Username, user.IsAdmin, app.config.jwt.expiry)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"access_token": token, "token_type": "bearer"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showCurrentUserHandler handles GET /v1/users/me.
// It simply echoes the identity the authenticate middleware resolved.
func (app *applicationDependencies) showCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
