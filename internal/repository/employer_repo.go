package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alumniportal/internal/model"
	"alumniportal/pkg/metrics"
)

const employerColumns = `
	id, employer_name, business_name, business_address,
	landline_no, mobile_no, company_email, company_website,
	user_id, password_hash, company_logo, status, profile_confirmed, submitted_at,
	pending_landline_no, pending_mobile_no, pending_company_email, pending_company_logo
`

type EmployerRepository struct {
	db *pgxpool.Pool
}

func NewEmployerRepository(db *pgxpool.Pool) *EmployerRepository {
	return &EmployerRepository{db: db}
}

func scanEmployer(row pgx.Row) (*model.Employer, error) {
	var e model.Employer
	err := row.Scan(
		&e.ID, &e.EmployerName, &e.BusinessName, &e.BusinessAddress,
		&e.LandlineNo, &e.MobileNo, &e.CompanyEmail, &e.CompanyWebsite,
		&e.UserID, &e.PasswordHash, &e.CompanyLogo, &e.Status, &e.ProfileConfirmed, &e.SubmittedAt,
		&e.PendingLandlineNo, &e.PendingMobileNo, &e.PendingCompanyEmail, &e.PendingCompanyLogo,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new employer registration with status PENDING.
func (r *EmployerRepository) Create(ctx context.Context, e *model.Employer) error {
	query := `
        INSERT INTO employers (
            employer_name, business_name, business_address,
            landline_no, mobile_no, company_email, company_website,
            user_id, password_hash, status
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'PENDING')
        RETURNING id, company_logo, status, submitted_at
    `
	return r.db.QueryRow(ctx, query,
		e.EmployerName, e.BusinessName, e.BusinessAddress,
		e.LandlineNo, e.MobileNo, e.CompanyEmail, e.CompanyWebsite,
		e.UserID, e.PasswordHash,
	).Scan(&e.ID, &e.CompanyLogo, &e.Status, &e.SubmittedAt)
}

func (r *EmployerRepository) GetByID(ctx context.Context, id int64) (*model.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE id = $1`
	return scanEmployer(r.db.QueryRow(ctx, query, id))
}

func (r *EmployerRepository) GetByUserID(ctx context.Context, userID string) (*model.Employer, error) {
	query := `SELECT ` + employerColumns + ` FROM employers WHERE LOWER(user_id) = LOWER($1)`
	return scanEmployer(r.db.QueryRow(ctx, query, userID))
}

// List returns a page of employers matching the search term, newest first,
// together with the total match count.
func (r *EmployerRepository) List(ctx context.Context, search string, limit, offset int) ([]model.Employer, int, error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQueryDuration("list", "employers", time.Since(start))
	}()

	pattern := "%" + search + "%"

	var total int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM employers
        WHERE employer_name ILIKE $1 OR business_name ILIKE $1
    `, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count employers: %w", err)
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+employerColumns+`
        FROM employers
        WHERE employer_name ILIKE $1 OR business_name ILIKE $1
        ORDER BY submitted_at DESC
        LIMIT $2 OFFSET $3
    `, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employers: %w", err)
	}
	defer rows.Close()

	var employers []model.Employer
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employer: %w", err)
		}
		employers = append(employers, *e)
	}

	return employers, total, rows.Err()
}

// UpdateStatus sets the moderation status. Returns pgx.ErrNoRows when the
// employer does not exist.
func (r *EmployerRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE employers SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EmployerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// StagePending overwrites the pending columns for the fields present in the
// change. Absent fields keep whatever was previously staged. Returns the
// previously staged logo path (empty if none) so the caller can release the
// orphaned upload, plus the employer after staging.
func (r *EmployerRepository) StagePending(ctx context.Context, id int64, change model.ChangeRequest) (string, *model.Employer, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var prevStagedLogo *string
	err = tx.QueryRow(ctx,
		`SELECT pending_company_logo FROM employers WHERE id = $1 FOR UPDATE`, id,
	).Scan(&prevStagedLogo)
	if err != nil {
		return "", nil, err
	}

	emp, err := scanEmployer(tx.QueryRow(ctx, `
        UPDATE employers SET
            pending_landline_no   = COALESCE($2, pending_landline_no),
            pending_mobile_no     = COALESCE($3, pending_mobile_no),
            pending_company_email = COALESCE($4, pending_company_email),
            pending_company_logo  = COALESCE($5, pending_company_logo)
        WHERE id = $1
        RETURNING `+employerColumns,
		id, change.LandlineNo, change.MobileNo, change.CompanyEmail, change.CompanyLogo,
	))
	if err != nil {
		return "", nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", nil, fmt.Errorf("failed to commit: %w", err)
	}

	// only report an orphan when a new logo actually replaced a staged one
	if change.CompanyLogo != nil && prevStagedLogo != nil && *prevStagedLogo != *change.CompanyLogo {
		return *prevStagedLogo, emp, nil
	}
	return "", emp, nil
}

// ApproveProfile promotes each staged contact field that is non-null and
// clears all three pending columns in the same statement, so a racing
// proposal can never leave pending cleared without its live resolution.
func (r *EmployerRepository) ApproveProfile(ctx context.Context, id int64) (*model.Employer, error) {
	emp, err := scanEmployer(r.db.QueryRow(ctx, `
        UPDATE employers SET
            landline_no   = COALESCE(pending_landline_no, landline_no),
            mobile_no     = COALESCE(pending_mobile_no, mobile_no),
            company_email = COALESCE(pending_company_email, company_email),
            pending_landline_no   = NULL,
            pending_mobile_no     = NULL,
            pending_company_email = NULL
        WHERE id = $1
        RETURNING `+employerColumns, id,
	))
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// ApproveLogo promotes a staged logo into the live column. Returns the logo
// that was live before the approval (for best-effort file cleanup) and the
// employer after the update. A missing staged logo is a no-op: the live value
// is untouched and the returned old logo equals the current one.
func (r *EmployerRepository) ApproveLogo(ctx context.Context, id int64) (string, *model.Employer, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var oldLogo string
	var staged *string
	err = tx.QueryRow(ctx,
		`SELECT company_logo, pending_company_logo FROM employers WHERE id = $1 FOR UPDATE`, id,
	).Scan(&oldLogo, &staged)
	if err != nil {
		return "", nil, err
	}

	emp, err := scanEmployer(tx.QueryRow(ctx, `
        UPDATE employers SET
            company_logo = COALESCE(pending_company_logo, company_logo),
            pending_company_logo = NULL
        WHERE id = $1
        RETURNING `+employerColumns, id,
	))
	if err != nil {
		return "", nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", nil, fmt.Errorf("failed to commit: %w", err)
	}

	if staged == nil {
		// idempotent no-op: nothing was promoted, nothing to clean up
		return "", emp, nil
	}
	return oldLogo, emp, nil
}

// RejectProfile discards staged contact fields without touching live values.
func (r *EmployerRepository) RejectProfile(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE employers SET
            pending_landline_no   = NULL,
            pending_mobile_no     = NULL,
            pending_company_email = NULL
        WHERE id = $1
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RejectLogo discards a staged logo and returns its path so the caller can
// release the orphaned file. Empty when nothing was staged.
func (r *EmployerRepository) RejectLogo(ctx context.Context, id int64) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var staged *string
	err = tx.QueryRow(ctx,
		`SELECT pending_company_logo FROM employers WHERE id = $1 FOR UPDATE`, id,
	).Scan(&staged)
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE employers SET pending_company_logo = NULL WHERE id = $1`, id,
	); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	if staged == nil {
		return "", nil
	}
	return *staged, nil
}

// Confirm marks the profile confirmed. Monotonic; never unsets.
func (r *EmployerRepository) Confirm(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE employers SET profile_confirmed = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdatePassword resets the login password. Returns false when no employer
// has the given login handle.
func (r *EmployerRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE employers SET password_hash = $1 WHERE LOWER(user_id) = LOWER($2)`,
		passwordHash, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountPending returns how many employer registrations await moderation.
func (r *EmployerRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM employers WHERE status = 'PENDING'`,
	).Scan(&count)
	return count, err
}
