package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mdblog/internal/core"
	"mdblog/internal/utils/functional"
	"mdblog/internal/validator"
	"mdblog/models"
)

func (app *application) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := app.core.ListTags(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	results := functional.Map(tags, newTagView)
	if err := app.writeJSON(w, http.StatusOK, results, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createTag(w http.ResponseWriter, r *http.Request) {
	text, ok := app.readTagText(w, r)
	if !ok {
		return
	}

	exists, err := app.core.TagWithTextExists(r.Context(), text)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if exists {
		v := validator.New()
		v.AddError("text", fmt.Sprintf("Tag with text %s exists.", text))
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	tag, err := app.core.CreateTag(r.Context(), text)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateTagText):
			v := validator.New()
			v.AddError("text", fmt.Sprintf("Tag with text %s exists.", text))
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors, ErrorStack: err})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, newTagView(tag), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getTag(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	tag, err := app.core.GetTagByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newTagView(tag), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateTag(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	text, ok := app.readTagText(w, r)
	if !ok {
		return
	}

	tag, err := app.core.UpdateTag(r.Context(), &models.Tag{ID: id, Text: text})
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, core.ErrDuplicateTagText):
			v := validator.New()
			v.AddError("text", fmt.Sprintf("Tag with text %s exists.", text))
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors, ErrorStack: err})
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newTagView(tag), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.DeleteTag(r.Context(), id); err != nil {
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

// readTagText decodes and field-validates the tag write payload. The
// uniqueness rule is checked by the callers: up front on create, via the
// constraint error on update so a tag can keep its own text.
func (app *application) readTagText(w http.ResponseWriter, r *http.Request) (string, bool) {
	type input struct {
		Text string `json:"text"`
	}

	var requestPayload input
	if err := app.readJSON(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return "", false
	}

	text := strings.TrimSpace(requestPayload.Text)

	v := validator.New()
	v.CheckNotBlank(text, "text", "This field may not be blank.")
	v.Check(len(text) <= 30, "text", "Ensure this field has no more than 30 characters.")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return "", false
	}

	return text, true
}
