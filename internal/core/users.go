package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mdobak/go-xerrors"

	"mdblog/internal/filter"
	"mdblog/internal/utils/databaseutils"
	"mdblog/internal/utils/stringutils"
	"mdblog/models"
)

var (
	ErrDuplicateUsername = xerrors.Message("Duplicate username")
	NoRecordFound        = xerrors.Message("No record found")
)

const userColumns = `id, username, first_name, last_name, email, password, is_superuser, last_login, date_joined`

func scanUser(rows *sql.Rows) (*models.User, error) {
	var user = &models.User{}

	if err := rows.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.IsSuperuser,
		&user.LastLogin,
		&user.DateJoined,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

func (c *Core) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date_joined
`
	args := []any{user.Username, user.FirstName, user.LastName, user.Email, user.Password}
	_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.User, error) {
		if err := rows.Scan(&user.ID, &user.DateJoined); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	}, args...)

	if err != nil {
		switch {
		case strings.Contains(err.Error(), `duplicate key value violates unique constraint "users_username_key"`):
			return xerrors.New(ErrDuplicateUsername)
		default:
			return xerrors.New(err)
		}
	}

	return nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE username = $1
	`, userColumns)

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func (c *Core) GetUsersByIDList(ctx context.Context, userIDList []int64) ([]*models.User, error) {
	if len(userIDList) == 0 {
		return []*models.User{}, nil
	}

	placeholders, args := stringutils.INClause(userIDList)
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id IN (%s)
	`, userColumns, strings.Join(placeholders, ", "))

	queryResultList, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return queryResultList, nil
}

// ListUsers returns one page of users in identifier order plus the total
// collection size.
func (c *Core) ListUsers(ctx context.Context, filters filter.Filter) ([]*models.User, filter.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, userColumns)

	return c.listUsers(ctx, query, filters)
}

// ListUsersSortedByUsername is the "sorted" collection action: username
// descending, paginated like the default listing.
func (c *Core) ListUsersSortedByUsername(ctx context.Context, filters filter.Filter) ([]*models.User, filter.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM users
		ORDER BY username DESC
		LIMIT $1 OFFSET $2
	`, userColumns)

	return c.listUsers(ctx, query, filters)
}

func (c *Core) listUsers(ctx context.Context, query string, filters filter.Filter) ([]*models.User, filter.Metadata, error) {
	var metadata filter.Metadata

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.User, error) {
		var user = &models.User{}
		if err := rows.Scan(
			&metadata.Count,
			&user.ID,
			&user.Username,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Password,
			&user.IsSuperuser,
			&user.LastLogin,
			&user.DateJoined,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	}, filters.Limit, filters.Offset)

	if err != nil {
		return nil, metadata, xerrors.New(err)
	}

	return users, metadata, nil
}

func (c *Core) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	query := fmt.Sprintf(`
		UPDATE users
		SET username = $1, first_name = $2, last_name = $3, email = $4, password = $5
		WHERE id = $6
		RETURNING %s
	`, userColumns)

	args := []any{user.Username, user.FirstName, user.LastName, user.Email, user.Password, user.ID}
	returningUser, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		case strings.Contains(err.Error(), `duplicate key value violates unique constraint "users_username_key"`):
			return nil, xerrors.New(ErrDuplicateUsername)
		default:
			return nil, xerrors.New(err)
		}
	}

	return returningUser, nil
}

func (c *Core) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET last_login = now()
		WHERE id = $1
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, userID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

// DeleteUserByUsername removes the user; their articles and comments go
// with them (ON DELETE CASCADE).
func (c *Core) DeleteUserByUsername(ctx context.Context, username string) error {
	query := `
		DELETE FROM users
		WHERE username = $1
	`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, username)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	return nil
}

func (c *Core) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1
	`, userColumns)

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}
