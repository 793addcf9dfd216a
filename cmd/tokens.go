package main

import (
	"context"
	"errors"
	"net/http"

	"mdblog/internal/core"
	"mdblog/internal/validator"
)

func (app *application) createTokenPair(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var requestPayload input
	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Username, "username", "This field may not be blank.")
	v.CheckNotBlank(requestPayload.Password, "password", "This field may not be blank.")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	user, err := app.core.GetUserByUsername(r.Context(), requestPayload.Username)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.invalidCredentialsResponse(w, r, err)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	match, err := app.auth.IsPasswordMatch(user.Password, requestPayload.Password)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r, errors.New("password mismatch"))
		return
	}

	tokenPair, err := app.auth.GenerateTokenPair(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	userID := user.ID
	app.doInBackground(func() {
		if err := app.core.UpdateLastLogin(context.Background(), userID); err != nil {
			app.logger.Error("Error updating last login", "user_id", userID, "error", err)
		}
	})

	if err := app.writeJSON(w, http.StatusOK, tokenPair, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) refreshToken(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Refresh string `json:"refresh"`
	}

	var requestPayload input
	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(requestPayload.Refresh, "refresh", "This field may not be blank.")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	claims, err := app.auth.AuthenticateRefresh(requestPayload.Refresh)
	if err != nil {
		app.invalidAuthenticationTokenResponse(w, r, err)
		return
	}

	user, err := app.core.GetUserByUsername(r.Context(), claims.Username)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.invalidAuthenticationTokenResponse(w, r, err)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	accessToken, err := app.auth.GenerateAccessToken(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"access": accessToken}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
