package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"mdblog/internal/core"
	"mdblog/internal/markdown"
	"mdblog/internal/utils/collectionutils"
	"mdblog/internal/utils/databaseutils"
	"mdblog/internal/utils/functional"
	"mdblog/internal/validator"
	"mdblog/models"
)

// optionalID is a nullable reference field that remembers whether the
// client sent it at all. On update an omitted field keeps the stored
// link while an explicit null clears it.
type optionalID struct {
	Present bool
	Value   *int64
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// articleInput is the write shape shared by create and update. Tags are
// plain text values; a nil list on update leaves the links untouched.
// Read-only fields of the article views (id, url, author, created and so
// on) are tolerated in the body and ignored, the author is always the
// authenticated requester.
type articleInput struct {
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Tags       *[]string  `json:"tags"`
	CategoryID optionalID `json:"category_id"`
	AvatarID   optionalID `json:"avatar_id"`
}

func (app *application) listArticles(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	query := r.URL.Query()
	search := app.readString(query, "search", "")
	username := app.readString(query, "username", "")
	filters := app.readFilters(r, v)

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return
	}

	articles, metadata, err := app.core.ListArticles(r.Context(), filters, search, username)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	articleIDList := functional.Map(articles, func(article *models.Article) int64 {
		return article.ID
	})

	tagsByArticleID, err := app.core.GetTagsByArticleIDs(r.Context(), articleIDList)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	authorIDList := functional.Map(articles, func(article *models.Article) int64 {
		return article.AuthorID
	})
	authors, err := app.core.GetUsersByIDList(r.Context(), authorIDList)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	authorByID := collectionutils.Associate(authors, func(user *models.User) (int64, *models.User) {
		return user.ID, user
	})

	var categoryIDList []int64
	for _, article := range articles {
		if article.CategoryID != nil {
			categoryIDList = append(categoryIDList, *article.CategoryID)
		}
	}
	categories, err := app.core.GetCategoriesByIDList(r.Context(), categoryIDList)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	categoryByID := collectionutils.Associate(categories, func(category *models.Category) (int64, *models.Category) {
		return category.ID, category
	})

	results := make([]*articleListView, 0, len(articles))
	for _, article := range articles {
		var category *models.Category
		if article.CategoryID != nil {
			category = collectionutils.GetOrDefault(categoryByID, *article.CategoryID, nil)
		}
		author := collectionutils.GetOrDefault(authorByID, article.AuthorID, nil)
		tags := collectionutils.GetOrDefault(tagsByArticleID, article.ID, []models.Tag{})
		results = append(results, newArticleListView(article, author, tags, category))
	}

	response := envelope{"count": metadata.Count, "results": results}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createArticle(w http.ResponseWriter, r *http.Request) {
	var requestPayload articleInput
	if err := app.readJSONIgnoreUnknown(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	tags, ok := app.normalizeAndValidateArticle(w, r, v, &requestPayload)
	if !ok {
		return
	}

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	article, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Article, error) {
		created, err := app.core.CreateArticle(txCtx, &models.Article{
			Title:      requestPayload.Title,
			Body:       requestPayload.Body,
			AuthorID:   user.ID,
			CategoryID: requestPayload.CategoryID.Value,
			AvatarID:   requestPayload.AvatarID.Value,
		})
		if err != nil {
			return nil, err
		}

		tagIDList := functional.Map(tags, func(tag *models.Tag) int64 {
			return tag.ID
		})
		if err := app.core.ReplaceArticleTags(txCtx, created.ID, tagIDList); err != nil {
			return nil, err
		}

		return created, nil
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response, err := app.prepareArticleDetailResponse(r.Context(), article)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticle(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	article, err := app.core.GetArticleByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	response, err := app.prepareArticleDetailResponse(r.Context(), article)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	article, err := app.core.GetArticleByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	var requestPayload articleInput
	if err := app.readJSONIgnoreUnknown(w, r, &requestPayload); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	tags, ok := app.normalizeAndValidateArticle(w, r, v, &requestPayload)
	if !ok {
		return
	}

	article.Title = requestPayload.Title
	article.Body = requestPayload.Body
	if requestPayload.CategoryID.Present {
		article.CategoryID = requestPayload.CategoryID.Value
	}
	if requestPayload.AvatarID.Present {
		article.AvatarID = requestPayload.AvatarID.Value
	}

	updated, err := databaseutils.DoTransactionally(r.Context(), app.session, func(txCtx context.Context) (*models.Article, error) {
		updated, err := app.core.UpdateArticle(txCtx, article)
		if err != nil {
			return nil, err
		}

		if requestPayload.Tags != nil {
			tagIDList := functional.Map(tags, func(tag *models.Tag) int64 {
				return tag.ID
			})
			if err := app.core.ReplaceArticleTags(txCtx, updated.ID, tagIDList); err != nil {
				return nil, err
			}
		}

		return updated, nil
	})
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalErrorResponse(w, r, err)
		return
	}

	response, err := app.prepareArticleDetailResponse(r.Context(), updated)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.core.DeleteArticle(r.Context(), id); err != nil {
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

// normalizeAndValidateArticle runs the write pipeline up to persistence:
// tag auto-creation first, then reference checks, then field checks. Tag
// creation is deliberately not part of the article transaction, a tag
// created here survives even when validation rejects the article.
func (app *application) normalizeAndValidateArticle(w http.ResponseWriter, r *http.Request, v *validator.Validator, requestPayload *articleInput) ([]*models.Tag, bool) {
	var tags []*models.Tag
	if requestPayload.Tags != nil && len(*requestPayload.Tags) > 0 {
		texts := make([]string, 0, len(*requestPayload.Tags))
		for _, text := range *requestPayload.Tags {
			v.CheckNotBlank(text, "tags", "Tag text may not be blank.")
			texts = append(texts, strings.TrimSpace(text))
		}
		if !v.IsValid() {
			app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
			return nil, false
		}

		ensured, err := app.core.EnsureTags(r.Context(), texts)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return nil, false
		}
		tags = ensured
	}

	if requestPayload.CategoryID.Value != nil {
		exists, err := app.core.CategoryExists(r.Context(), *requestPayload.CategoryID.Value)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return nil, false
		}
		if !exists {
			v.AddError("category_id", fmt.Sprintf("Category with id %d not exists.", *requestPayload.CategoryID.Value))
		}
	}

	if requestPayload.AvatarID.Value != nil {
		exists, err := app.core.AvatarExists(r.Context(), *requestPayload.AvatarID.Value)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return nil, false
		}
		if !exists {
			v.AddError("avatar_id", fmt.Sprintf("Avatar with id %d not exists.", *requestPayload.AvatarID.Value))
		}
	}

	v.CheckNotBlank(requestPayload.Title, "title", "This field may not be blank.")
	v.Check(len(requestPayload.Title) <= 100, "title", "Ensure this field has no more than 100 characters.")
	v.CheckNotBlank(requestPayload.Body, "body", "This field may not be blank.")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return nil, false
	}

	return tags, true
}

func (app *application) prepareArticleDetailResponse(ctx context.Context, article *models.Article) (*articleDetailView, error) {
	author, err := app.core.GetUserByID(ctx, article.AuthorID)
	if err != nil {
		return nil, err
	}

	tagsByArticleID, err := app.core.GetTagsByArticleIDs(ctx, []int64{article.ID})
	if err != nil {
		return nil, err
	}
	tags := collectionutils.GetOrDefault(tagsByArticleID, article.ID, []models.Tag{})

	var category *models.Category
	if article.CategoryID != nil {
		category, err = app.core.GetCategoryByID(ctx, *article.CategoryID)
		if err != nil && !errors.Is(err, core.NoRecordFound) {
			return nil, err
		}
	}

	var avatar *models.Avatar
	if article.AvatarID != nil {
		avatar, err = app.core.GetAvatarByID(ctx, *article.AvatarID)
		if err != nil && !errors.Is(err, core.NoRecordFound) {
			return nil, err
		}
	}

	comments, err := app.core.GetCommentsByArticleID(ctx, article.ID)
	if err != nil {
		return nil, err
	}

	commentAuthorIDList := functional.Map(comments, func(comment *models.Comment) int64 {
		return comment.AuthorID
	})
	commentAuthors, err := app.core.GetUsersByIDList(ctx, commentAuthorIDList)
	if err != nil {
		return nil, err
	}
	commentAuthorByID := collectionutils.Associate(commentAuthors, func(user *models.User) (int64, *models.User) {
		return user.ID, user
	})

	commentViews := make([]*commentView, 0, len(comments))
	for _, comment := range comments {
		commentViews = append(commentViews, newCommentView(comment, collectionutils.GetOrDefault(commentAuthorByID, comment.AuthorID, nil)))
	}

	bodyHTML, tocHTML := markdown.Render(article.Body)

	return newArticleDetailView(article, author, tags, category, avatar, commentViews, bodyHTML, tocHTML), nil
}
