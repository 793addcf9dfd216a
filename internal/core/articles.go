package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"mdblog/internal/filter"
	"mdblog/internal/utils/databaseutils"
	"mdblog/internal/utils/stringutils"
	"mdblog/models"
)

const articleColumns = `id, title, body, created, updated, author_id, category_id, avatar_id`

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	var article = &models.Article{}

	if err := rows.Scan(
		&article.ID,
		&article.Title,
		&article.Body,
		&article.Created,
		&article.Updated,
		&article.AuthorID,
		&article.CategoryID,
		&article.AvatarID,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return article, nil
}

// ListArticles returns one page of articles, newest first. search narrows
// by title substring, username by the author account; either may be empty.
func (c *Core) ListArticles(ctx context.Context, filters filter.Filter, search, username string) ([]*models.Article, filter.Metadata, error) {
	query := `
		SELECT count(*) OVER(),
		       a.id, a.title, a.body, a.created, a.updated, a.author_id, a.category_id, a.avatar_id
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE ($1 = '' OR a.title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR u.username = $2)
		ORDER BY a.created DESC
		LIMIT $3 OFFSET $4
	`

	// Escaped so %/_ in the search text match literally.
	search = stringutils.EscapeLike(search)

	var metadata filter.Metadata
	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.Article, error) {
		var article = &models.Article{}
		if err := rows.Scan(
			&metadata.Count,
			&article.ID,
			&article.Title,
			&article.Body,
			&article.Created,
			&article.Updated,
			&article.AuthorID,
			&article.CategoryID,
			&article.AvatarID,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return article, nil
	}, search, username, filters.Limit, filters.Offset)

	if err != nil {
		return nil, metadata, xerrors.New(err)
	}

	return articles, metadata, nil
}

func (c *Core) GetArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE id = $1
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return article, nil
}

func (c *Core) ArticleExists(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM articles WHERE id = $1
		)
	`

	exists, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var exists bool
		if err := rows.Scan(&exists); err != nil {
			return false, xerrors.New(err)
		}
		return exists, nil
	}, id)

	if err != nil {
		return false, xerrors.New(err)
	}

	return exists, nil
}

func (c *Core) GetArticlesByCategoryID(ctx context.Context, categoryID int64) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE category_id = $1
		ORDER BY created DESC
	`

	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanArticle, categoryID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return articles, nil
}

func (c *Core) CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := `
		INSERT INTO articles (title, body, author_id, category_id, avatar_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + articleColumns + `
	`

	args := []any{article.Title, article.Body, article.AuthorID, article.CategoryID, article.AvatarID}
	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return created, nil
}

// UpdateArticle persists the mutable fields. updated is always bumped
// here, never taken from the caller.
func (c *Core) UpdateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := `
		UPDATE articles
		SET title = $1, body = $2, category_id = $3, avatar_id = $4, updated = now()
		WHERE id = $5
		RETURNING ` + articleColumns + `
	`

	args := []any{article.Title, article.Body, article.CategoryID, article.AvatarID, article.ID}
	updated, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle, args...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return updated, nil
}

func (c *Core) DeleteArticle(ctx context.Context, id int64) error {
	query := `
		DELETE FROM articles
		WHERE id = $1
	`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, id)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	return nil
}
