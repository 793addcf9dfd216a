package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mdobak/go-xerrors"

	"mdblog/internal/utils/databaseutils"
	"mdblog/internal/utils/stringutils"
	"mdblog/models"
)

var ErrDuplicateTagText = xerrors.Message("Duplicate tag text")

func scanTag(rows *sql.Rows) (*models.Tag, error) {
	var tag = &models.Tag{}

	if err := rows.Scan(&tag.ID, &tag.Text); err != nil {
		return nil, xerrors.New(err)
	}
	return tag, nil
}

// ListTags returns the whole collection in identifier-descending order.
func (c *Core) ListTags(ctx context.Context) ([]*models.Tag, error) {
	query := `
		SELECT id, text
		FROM tags
		ORDER BY id DESC
	`

	tags, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanTag)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return tags, nil
}

func (c *Core) GetTagByID(ctx context.Context, id int64) (*models.Tag, error) {
	query := `
		SELECT id, text
		FROM tags
		WHERE id = $1
	`

	tag, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanTag, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return tag, nil
}

func (c *Core) TagWithTextExists(ctx context.Context, text string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM tags WHERE text = $1
		)
	`

	exists, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var exists bool
		if err := rows.Scan(&exists); err != nil {
			return false, xerrors.New(err)
		}
		return exists, nil
	}, text)

	if err != nil {
		return false, xerrors.New(err)
	}

	return exists, nil
}

func (c *Core) CreateTag(ctx context.Context, text string) (*models.Tag, error) {
	query := `
		INSERT INTO tags (text)
		VALUES ($1)
		RETURNING id, text
	`

	tag, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanTag, text)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), `duplicate key value violates unique constraint`):
			return nil, xerrors.New(ErrDuplicateTagText)
		default:
			return nil, xerrors.New(err)
		}
	}

	return tag, nil
}

func (c *Core) UpdateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	query := `
		UPDATE tags
		SET text = $1
		WHERE id = $2
		RETURNING id, text
	`

	updated, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanTag, tag.Text, tag.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		case strings.Contains(err.Error(), `duplicate key value violates unique constraint`):
			return nil, xerrors.New(ErrDuplicateTagText)
		default:
			return nil, xerrors.New(err)
		}
	}

	return updated, nil
}

func (c *Core) DeleteTag(ctx context.Context, id int64) error {
	query := `
		DELETE FROM tags
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

// EnsureTags upserts every text and returns the full set of tags in input
// order. The unique constraint plus ON CONFLICT makes concurrent requests
// supplying the same new text converge on a single row.
func (c *Core) EnsureTags(ctx context.Context, texts []string) ([]*models.Tag, error) {
	if len(texts) == 0 {
		return []*models.Tag{}, nil
	}

	// Postgres rejects an upsert touching the same row twice, so the
	// insert values must be distinct even when the input repeats a text.
	seen := make(map[string]bool, len(texts))
	valueString := make([]string, 0, len(texts))
	valueArgs := make([]any, 0, len(texts))
	for _, text := range texts {
		if seen[text] {
			continue
		}
		seen[text] = true
		valueString = append(valueString, fmt.Sprintf("($%d)", len(valueArgs)+1))
		valueArgs = append(valueArgs, text)
	}

	insertSQL := fmt.Sprintf(`
		INSERT INTO tags (text)
		VALUES %s
		ON CONFLICT (text) DO UPDATE SET text = EXCLUDED.text
		RETURNING id, text
	`, strings.Join(valueString, ", "))

	returnedTags, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, insertSQL, scanTag, valueArgs...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	returnedByText := make(map[string]*models.Tag, len(returnedTags))
	for _, tag := range returnedTags {
		returnedByText[tag.Text] = tag
	}

	resultTags := make([]*models.Tag, 0, len(texts))
	for _, text := range texts {
		tag, exists := returnedByText[text]
		if !exists {
			return nil, xerrors.Newf("tag %s not found in database", text)
		}
		resultTags = append(resultTags, tag)
	}

	return resultTags, nil
}

// GetTagsByArticleIDs loads the tags of every listed article in one
// query, keyed by article.
func (c *Core) GetTagsByArticleIDs(ctx context.Context, articleIDs []int64) (map[int64][]models.Tag, error) {
	result := make(map[int64][]models.Tag)
	if len(articleIDs) == 0 {
		return result, nil
	}

	placeholders, args := stringutils.INClause(articleIDs)
	query := fmt.Sprintf(`
		SELECT at.article_id, t.id, t.text
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id IN (%s)
		ORDER BY t.id DESC
	`, strings.Join(placeholders, ", "))

	type articleTag struct {
		articleID int64
		tag       models.Tag
	}

	rows, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (articleTag, error) {
		var at articleTag
		if err := rows.Scan(&at.articleID, &at.tag.ID, &at.tag.Text); err != nil {
			return at, xerrors.New(err)
		}
		return at, nil
	}, args...)

	if err != nil {
		return nil, xerrors.New(err)
	}

	for _, at := range rows {
		result[at.articleID] = append(result[at.articleID], at.tag)
	}

	return result, nil
}

// ReplaceArticleTags rewrites the article/tag links to exactly tagIDs.
func (c *Core) ReplaceArticleTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	deleteSQL := `
		DELETE FROM article_tags
		WHERE article_id = $1
	`
	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, articleID); err != nil {
		return xerrors.New(err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	valueString := make([]string, 0, len(tagIDs))
	valueArgs := []any{articleID}
	for i, tagID := range tagIDs {
		valueString = append(valueString, fmt.Sprintf("($1, $%d)", i+2))
		valueArgs = append(valueArgs, tagID)
	}

	insertSQL := fmt.Sprintf(`
		INSERT INTO article_tags (article_id, tag_id)
		VALUES %s
		ON CONFLICT DO NOTHING
	`, strings.Join(valueString, ", "))

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, insertSQL, valueArgs...); err != nil {
		return xerrors.New(err)
	}

	return nil
}
