package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mdblog/internal/core"
	"mdblog/internal/filter"
	"mdblog/internal/permissions"
	"mdblog/internal/utils/functional"
	"mdblog/internal/validator"
	"mdblog/models"
)

func (app *application) registerUser(w http.ResponseWriter, r *http.Request) {
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
	checkUsername(v, requestPayload.Username)
	checkPassword(v, requestPayload.Password)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	hashedPassword, err := app.auth.HashPassword(requestPayload.Password)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	user := &models.User{
		Username: requestPayload.Username,
		Password: hashedPassword,
	}

	if err := app.core.CreateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "A user with that username already exists.")
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors, ErrorStack: err})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, newUserRegisterView(user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) listUsers(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	filters := app.readFilters(r, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	users, metadata, err := app.core.ListUsers(r.Context(), filters)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	app.writeUserList(w, r, users, metadata)
}

// getUser also dispatches the "sorted" collection action: a dedicated
// static route would conflict with the :username wildcard in httprouter.
func (app *application) getUser(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName("username")
	if username == "sorted" {
		app.listSortedUsers(w, r)
		return
	}

	user, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newUserRegisterView(user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) listSortedUsers(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	filters := app.readFilters(r, v)
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	users, metadata, err := app.core.ListUsersSortedByUsername(r.Context(), filters)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	app.writeUserList(w, r, users, metadata)
}

func (app *application) getUserInfo(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName("username")

	user, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newUserDetailView(user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateUser(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName("username")

	user, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	requester, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if !permissions.SelfOrReadOnly(r.Method, requester, user) {
		app.forbiddenResponse(w, r)
		return
	}

	type input struct {
		Username  *string `json:"username"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     *string `json:"email"`
		Password  *string `json:"password"`
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
	if requestPayload.Username != nil {
		checkUsername(v, *requestPayload.Username)
		user.Username = *requestPayload.Username
	}
	if requestPayload.FirstName != nil {
		user.FirstName = *requestPayload.FirstName
	}
	if requestPayload.LastName != nil {
		user.LastName = *requestPayload.LastName
	}
	if requestPayload.Email != nil {
		v.CheckEmail(*requestPayload.Email, "Enter a valid email address.")
		user.Email = *requestPayload.Email
	}
	if requestPayload.Password != nil {
		checkPassword(v, *requestPayload.Password)
	}
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	if requestPayload.Password != nil {
		hashedPassword, err := app.auth.HashPassword(*requestPayload.Password)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
		user.Password = hashedPassword
	}

	updated, err := app.core.UpdateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "A user with that username already exists.")
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors, ErrorStack: err})
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newUserRegisterView(updated), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName("username")

	user, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	requester, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if !permissions.SelfOrReadOnly(r.Method, requester, user) {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.core.DeleteUserByUsername(r.Context(), username); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) writeUserList(w http.ResponseWriter, r *http.Request, users []*models.User, metadata filter.Metadata) {
	results := functional.Map(users, newUserRegisterView)
	response := envelope{"count": metadata.Count, "results": results}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
