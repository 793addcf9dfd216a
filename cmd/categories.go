package main

import (
	"errors"
	"net/http"

	"mdblog/internal/core"
	"mdblog/internal/utils/functional"
	"mdblog/internal/validator"
	"mdblog/models"
)

func (app *application) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := app.core.ListCategories(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	results := functional.Map(categories, newCategoryView)
	if err := app.writeJSON(w, http.StatusOK, results, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createCategory(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Title string `json:"title"`
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
	v.CheckNotBlank(requestPayload.Title, "title", "This field may not be blank.")
	v.Check(len(requestPayload.Title) <= 100, "title", "Ensure this field has no more than 100 characters.")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	category, err := app.core.CreateCategory(r.Context(), &models.Category{Title: requestPayload.Title})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, newCategoryView(category), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	category, err := app.core.GetCategoryByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	articles, err := app.core.GetArticlesByCategoryID(r.Context(), category.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newCategoryDetailView(category, articles), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	type input struct {
		Title string `json:"title"`
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
	v.CheckNotBlank(requestPayload.Title, "title", "This field may not be blank.")
	v.Check(len(requestPayload.Title) <= 100, "title", "Ensure this field has no more than 100 characters.")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	category, err := app.core.UpdateCategory(r.Context(), &models.Category{ID: id, Title: requestPayload.Title})
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	articles, err := app.core.GetArticlesByCategoryID(r.Context(), category.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newCategoryDetailView(category, articles), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.DeleteCategory(r.Context(), id); err != nil {
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
