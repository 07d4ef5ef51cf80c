package userrepo

import (
	"context"
	"database/sql"
	"docserver/internal/entities"
	"docserver/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pkg = "userRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) AddUser(ctx context.Context, user *models.User) (int64, error) {
	op := pkg + "AddUser"

	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users(login, pass_hash) VALUES($1, $2) RETURNING id`,
		user.Login, user.PassHash).Scan(&id)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok {
			if pgErr.Code == "23505" {
				return 0, &models.UniqueConstraintError{
					Constraint: pgErr.Constraint,
					Err:        models.ErrUNIQUEConstraintFailed,
				}
			}
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) UserByID(ctx context.Context, id int64) (*models.User, error) {
	op := pkg + "UserByID"

	rawUser := entities.User{}

	err := r.db.GetContext(ctx, &rawUser,
		`SELECT
			u.id AS id,
			u.login AS login,
			u.pass_hash AS pass_hash
		FROM users u
		WHERE u.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.User{
		ID:       rawUser.ID,
		Login:    rawUser.Login,
		PassHash: rawUser.PassHash,
	}, nil
}

func (r *repository) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	op := pkg + "UserByLogin"

	rawUser := entities.User{}

	err := r.db.GetContext(ctx, &rawUser,
		`SELECT
			u.id AS id,
			u.login AS login,
			u.pass_hash AS pass_hash
		FROM users u
		WHERE u.login = $1`, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.User{
		ID:       rawUser.ID,
		Login:    rawUser.Login,
		PassHash: rawUser.PassHash,
	}, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]*models.User, error) {
	op := pkg + "ListUsers"

	rawUsers := make([]entities.User, 0)

	err := r.db.SelectContext(ctx, &rawUsers,
		`SELECT
			u.id AS id,
			u.login AS login,
			u.pass_hash AS pass_hash
		FROM users u
		ORDER BY u.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users := make([]*models.User, 0, len(rawUsers))

	for _, rawUser := range rawUsers {
		users = append(users, &models.User{
			ID:       rawUser.ID,
			Login:    rawUser.Login,
			PassHash: rawUser.PassHash,
		})
	}

	return users, nil
}

// ExistingIDs filters the given ids down to those that reference a user
// row. Order of the result follows the database, not the input.
func (r *repository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	op := pkg + "ExistingIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	existing := make([]int64, 0, len(ids))

	err := r.db.SelectContext(ctx, &existing,
		`SELECT u.id FROM users u WHERE u.id = ANY($1) ORDER BY u.id ASC`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return existing, nil
}
