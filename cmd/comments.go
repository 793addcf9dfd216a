package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mdobak/go-xerrors"

	"mdblog/internal/core"
	"mdblog/internal/permissions"
	"mdblog/internal/utils/collectionutils"
	"mdblog/internal/utils/functional"
	"mdblog/internal/validator"
	"mdblog/models"
)

func (app *application) listComments(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()
	filters := app.readFilters(r, v)

	var articleID *int64
	if query.Get("article") != "" {
		id := app.readInt(query, "article", 0, v)
		articleID = &id
	}

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	comments, metadata, err := app.core.ListComments(r.Context(), filters, articleID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	authorIDList := functional.Map(comments, func(comment *models.Comment) int64 {
		return comment.AuthorID
	})
	authors, err := app.core.GetUsersByIDList(r.Context(), authorIDList)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	authorByID := collectionutils.Associate(authors, func(user *models.User) (int64, *models.User) {
		return user.ID, user
	})

	results := make([]*commentView, 0, len(comments))
	for _, comment := range comments {
		results = append(results, newCommentView(comment, collectionutils.GetOrDefault(authorByID, comment.AuthorID, nil)))
	}

	response := envelope{"count": metadata.Count, "results": results}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createComment(w http.ResponseWriter, r *http.Request) {
	user, _ := app.auth.GetAuthenticatedUser(r)
	if !permissions.OwnerOrReadOnlyCollection(r.Method, user) {
		app.authenticationRequiredResponse(w, r, xerrors.New("authentication required"))
		return
	}

	type input struct {
		Content   string `json:"content"`
		ArticleID *int64 `json:"article_id"`
		ParentID  *int64 `json:"parent_id"`
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

	if requestPayload.ArticleID == nil {
		v.AddError("article_id", "This field is required.")
	} else {
		exists, err := app.core.ArticleExists(r.Context(), *requestPayload.ArticleID)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
		if !exists {
			v.AddError("article_id", fmt.Sprintf("Article with id %d not exists.", *requestPayload.ArticleID))
		}
	}

	if requestPayload.ParentID != nil {
		exists, err := app.core.CommentExists(r.Context(), *requestPayload.ParentID)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
		if !exists {
			v.AddError("parent_id", fmt.Sprintf("Comment with id %d not exists.", *requestPayload.ParentID))
		}
	}

	v.CheckNotBlank(requestPayload.Content, "content", "This field may not be blank.")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	comment, err := app.core.CreateComment(r.Context(), &models.Comment{
		Content:   requestPayload.Content,
		AuthorID:  user.ID,
		ArticleID: *requestPayload.ArticleID,
		ParentID:  requestPayload.ParentID,
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, newCommentView(comment, user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getComment(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	comment, err := app.core.GetCommentByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	author, err := app.core.GetUserByID(r.Context(), comment.AuthorID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newCommentView(comment, author), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateComment(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	comment, err := app.core.GetCommentByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if !permissions.OwnerOrReadOnly(r.Method, user, comment.AuthorID) {
		app.forbiddenResponse(w, r)
		return
	}

	type input struct {
		Content string `json:"content"`
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
	v.CheckNotBlank(requestPayload.Content, "content", "This field may not be blank.")
	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	comment.Content = requestPayload.Content
	updated, err := app.core.UpdateComment(r.Context(), comment)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	author, err := app.core.GetUserByID(r.Context(), updated.AuthorID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newCommentView(updated, author), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	comment, err := app.core.GetCommentByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if !permissions.OwnerOrReadOnly(r.Method, user, comment.AuthorID) {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.core.DeleteComment(r.Context(), id); err != nil {
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
