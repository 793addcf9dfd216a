package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"mdblog/internal/utils/databaseutils"
	"mdblog/models"
)

func scanAvatar(rows *sql.Rows) (*models.Avatar, error) {
	var avatar = &models.Avatar{}

	if err := rows.Scan(&avatar.ID, &avatar.Content, &avatar.Created); err != nil {
		return nil, xerrors.New(err)
	}
	return avatar, nil
}

func (c *Core) ListAvatars(ctx context.Context) ([]*models.Avatar, error) {
	query := `
		SELECT id, content, created
		FROM avatars
		ORDER BY id
	`

	avatars, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanAvatar)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return avatars, nil
}

func (c *Core) GetAvatarByID(ctx context.Context, id int64) (*models.Avatar, error) {
	query := `
		SELECT id, content, created
		FROM avatars
		WHERE id = $1
	`

	avatar, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanAvatar, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return avatar, nil
}

func (c *Core) AvatarExists(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM avatars WHERE id = $1
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

func (c *Core) CreateAvatar(ctx context.Context, content string) (*models.Avatar, error) {
	query := `
		INSERT INTO avatars (content)
		VALUES ($1)
		RETURNING id, content, created
	`

	avatar, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanAvatar, content)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return avatar, nil
}

func (c *Core) UpdateAvatar(ctx context.Context, avatar *models.Avatar) (*models.Avatar, error) {
	query := `
		UPDATE avatars
		SET content = $1
		WHERE id = $2
		RETURNING id, content, created
	`

	updated, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanAvatar, avatar.Content, avatar.ID)
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

// DeleteAvatar removes the record. Articles pointing at it keep their row
// with a null avatar (ON DELETE SET NULL).
func (c *Core) DeleteAvatar(ctx context.Context, id int64) error {
	query := `
		DELETE FROM avatars
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
