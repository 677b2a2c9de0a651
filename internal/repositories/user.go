// Package repositories implements SQLite persistence for users and intake
// submissions.
package repositories

import (
	"context"
	"log/slog"

	"github.com/lendfolio/lendfolio/internal/db"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/models"
)

type UserRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewUserRepository(dbs *db.Database, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		dbs:    dbs,
		logger: logger.With("source", "UserRepository"),
	}
}

// Upsert writes the user, overwriting the display name on conflict.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	stmt := `INSERT INTO users (id, display_name)
VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET display_name = excluded.display_name`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, user.ID, user.DisplayName); err != nil {
		return errors.Wrap(err, "upsert user")
	}
	return nil
}

// Exists reports whether a user with the given id is registered.
func (r *UserRepository) Exists(ctx context.Context, id []byte) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`
	if err := r.dbs.ReadOnly.GetContext(ctx, &exists, stmt, id); err != nil {
		return false, errors.Wrap(err, "check user exists")
	}
	return exists, nil
}
