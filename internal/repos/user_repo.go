package repos

import (
	"context"
	"time"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// UpsertGoogle inserts the user keyed by Google subject, or refreshes the
// profile fields of an existing one, and returns the stored row.
func (r *UserRepo) UpsertGoogle(ctx context.Context, p domain.GoogleProfile) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`
		INSERT INTO users(google_id, name, email, picture, created_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(google_id) DO UPDATE SET
		  name = excluded.name,
		  email = excluded.email,
		  picture = excluded.picture
		RETURNING id, google_id, name, email, picture, created_at`),
		p.Subject, p.Name, p.Email, p.Picture, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ByID returns sql.ErrNoRows when the user does not exist.
func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT id, google_id, name, email, picture, created_at FROM users WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM users WHERE id = ?`), id)
	return err
}
