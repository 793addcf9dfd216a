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

func scanCategory(rows *sql.Rows) (*models.Category, error) {
	var category = &models.Category{}

	if err := rows.Scan(&category.ID, &category.Title, &category.Created); err != nil {
		return nil, xerrors.New(err)
	}
	return category, nil
}

// ListCategories returns the whole collection: categories are expected to
// stay small, so the endpoint is not paginated.
func (c *Core) ListCategories(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, title, created
		FROM categories
		ORDER BY created DESC
	`

	categories, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanCategory)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return categories, nil
}

func (c *Core) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `
		SELECT id, title, created
		FROM categories
		WHERE id = $1
	`

	category, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanCategory, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return category, nil
}

func (c *Core) CategoryExists(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories WHERE id = $1
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

func (c *Core) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (title)
		VALUES ($1)
		RETURNING id, title, created
	`

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanCategory, category.Title)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return created, nil
}

func (c *Core) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET title = $1
		WHERE id = $2
		RETURNING id, title, created
	`

	updated, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanCategory, category.Title, category.ID)
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

// DeleteCategory removes the category. Linked articles survive with a
// null category (ON DELETE SET NULL).
func (c *Core) DeleteCategory(ctx context.Context, id int64) error {
	query := `
		DELETE FROM categories
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

func (c *Core) GetCategoriesByIDList(ctx context.Context, categoryIDList []int64) ([]*models.Category, error) {
	if len(categoryIDList) == 0 {
		return []*models.Category{}, nil
	}

	placeholders, args := stringutils.INClause(categoryIDList)
	query := fmt.Sprintf(`
		SELECT id, title, created
		FROM categories
		WHERE id IN (%s)
	`, strings.Join(placeholders, ", "))

	categories, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanCategory, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return categories, nil
}
