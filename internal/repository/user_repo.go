package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"alumniportal/internal/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new alumni registration.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO registration (first_name, last_name, personal_email, user_name, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		u.FirstName, u.LastName, u.PersonalEmail, u.UserName, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
}

// FindByUserName returns the account for a login handle.
func (r *UserRepository) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	query := `
        SELECT id, first_name, last_name, personal_email, user_name, password_hash, created_at
        FROM registration
        WHERE user_name = $1
    `
	var u model.User
	err := r.db.QueryRow(ctx, query, userName).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.PersonalEmail, &u.UserName, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword resets the password. Returns false when the handle is unknown.
func (r *UserRepository) UpdatePassword(ctx context.Context, userName, passwordHash string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE registration SET password_hash = $1 WHERE user_name = $2`,
		passwordHash, userName,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
