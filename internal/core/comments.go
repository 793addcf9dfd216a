package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"mdblog/internal/filter"
	"mdblog/internal/utils/databaseutils"
	"mdblog/models"
)

const commentColumns = `id, content, created, author_id, article_id, parent_id`

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	var comment = &models.Comment{}

	if err := rows.Scan(
		&comment.ID,
		&comment.Content,
		&comment.Created,
		&comment.AuthorID,
		&comment.ArticleID,
		&comment.ParentID,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return comment, nil
}

// ListComments returns one page of comments, newest first, optionally
// narrowed to a single article.
func (c *Core) ListComments(ctx context.Context, filters filter.Filter, articleID *int64) ([]*models.Comment, filter.Metadata, error) {
	query := `
		SELECT count(*) OVER(), ` + commentColumns + `
		FROM comments
		WHERE ($1::bigint IS NULL OR article_id = $1)
		ORDER BY created DESC
		LIMIT $2 OFFSET $3
	`

	var metadata filter.Metadata
	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.Comment, error) {
		var comment = &models.Comment{}
		if err := rows.Scan(
			&metadata.Count,
			&comment.ID,
			&comment.Content,
			&comment.Created,
			&comment.AuthorID,
			&comment.ArticleID,
			&comment.ParentID,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return comment, nil
	}, articleID, filters.Limit, filters.Offset)

	if err != nil {
		return nil, metadata, xerrors.New(err)
	}

	return comments, metadata, nil
}

// GetCommentsByArticleID loads every comment of one article for the
// article detail view, newest first.
func (c *Core) GetCommentsByArticleID(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE article_id = $1
		ORDER BY created DESC
	`

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanComment, articleID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return comments, nil
}

func (c *Core) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE id = $1
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanComment, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return comment, nil
}

func (c *Core) CommentExists(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM comments WHERE id = $1
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

func (c *Core) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (content, author_id, article_id, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns + `
	`

	args := []any{comment.Content, comment.AuthorID, comment.ArticleID, comment.ParentID}
	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanComment, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return created, nil
}

func (c *Core) UpdateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		UPDATE comments
		SET content = $1
		WHERE id = $2
		RETURNING ` + commentColumns + `
	`

	updated, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanComment, comment.Content, comment.ID)
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

// DeleteComment removes the comment; replies survive as top-level
// comments (parent_id ON DELETE SET NULL).
func (c *Core) DeleteComment(ctx context.Context, id int64) error {
	query := `
		DELETE FROM comments
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
