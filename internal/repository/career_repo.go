package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alumniportal/internal/model"
)

type CareerRepository struct {
	db *pgxpool.Pool
}

func NewCareerRepository(db *pgxpool.Pool) *CareerRepository {
	return &CareerRepository{db: db}
}

// Create inserts a new career posting.
func (r *CareerRepository) Create(ctx context.Context, c *model.Career) error {
	query := `
        INSERT INTO careers (employer_id, title, description, link)
        VALUES ($1, $2, $3, $4)
        RETURNING id, date_posted
    `
	return r.db.QueryRow(ctx, query, c.EmployerID, c.Title, c.Description, c.Link).
		Scan(&c.ID, &c.DatePosted)
}

func (r *CareerRepository) GetByID(ctx context.Context, id int64) (*model.Career, error) {
	query := `
        SELECT id, employer_id, title, description, link, date_posted
        FROM careers
        WHERE id = $1
    `
	var c model.Career
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EmployerID, &c.Title, &c.Description, &c.Link, &c.DatePosted,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByEmployer returns the employer's own postings, newest first.
func (r *CareerRepository) ListByEmployer(ctx context.Context, employerID int64) ([]model.Career, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, employer_id, title, description, link, date_posted
        FROM careers
        WHERE employer_id = $1
        ORDER BY date_posted DESC
    `, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query careers: %w", err)
	}
	return scanCareers(rows)
}

// ListPublic returns all postings for the public board.
func (r *CareerRepository) ListPublic(ctx context.Context) ([]model.Career, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, employer_id, title, description, link, date_posted
        FROM careers
        ORDER BY date_posted DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query careers: %w", err)
	}
	return scanCareers(rows)
}

// Delete removes a career. Live applications cascade away with it; the
// archive keeps their history.
func (r *CareerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCareers(rows pgx.Rows) ([]model.Career, error) {
	defer rows.Close()

	var careers []model.Career
	for rows.Next() {
		var c model.Career
		err := rows.Scan(&c.ID, &c.EmployerID, &c.Title, &c.Description, &c.Link, &c.DatePosted)
		if err != nil {
			return nil, fmt.Errorf("failed to scan career: %w", err)
		}
		careers = append(careers, c)
	}
	return careers, rows.Err()
}
