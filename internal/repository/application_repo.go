package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"alumniportal/internal/model"
	"alumniportal/pkg/metrics"
	"alumniportal/pkg/mq"
	"alumniportal/pkg/outbox"
)

type ApplicationRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
}

func NewApplicationRepository(db *pgxpool.Pool, outboxRepo *outbox.Repository) *ApplicationRepository {
	return &ApplicationRepository{db: db, outbox: outboxRepo}
}

// ApplicationSubmittedPayload is broadcast once the submission commits.
type ApplicationSubmittedPayload struct {
	ApplicationID int64     `json:"application_id"`
	ApplicantName string    `json:"applicant_name"`
	CareerID      int64     `json:"career_id"`
	CareerTitle   string    `json:"career_title"`
	EmployerID    int64     `json:"employer_id"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// SubmitWithArchive inserts the live application row, reads the owning
// career's denormalized fields, and writes the archive snapshot plus the
// notification row and outbox event -- all in one transaction. If any write
// fails, nothing is retained; a live application without its archive row is
// never visible.
func (r *ApplicationRepository) SubmitWithArchive(ctx context.Context, app *model.Application) (*model.ArchivedApplication, error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQueryDuration("submit_with_archive", "applications", time.Since(start))
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
        INSERT INTO applications (first_name, last_name, phone_no, email, user_name, career_id, resume_path)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, date_submitted
    `,
		app.FirstName, app.LastName, app.PhoneNo, app.Email, app.UserName, app.CareerID, app.ResumePath,
	).Scan(&app.ID, &app.DateSubmitted)
	if err != nil {
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}

	// owner snapshot at submission time; later reassignment or deletion of
	// the career must not change what the archive records
	var careerTitle, companyName string
	var employerID int64
	err = tx.QueryRow(ctx, `
        SELECT c.title, e.business_name, e.id
        FROM careers c
        JOIN employers e ON c.employer_id = e.id
        WHERE c.id = $1
    `, app.CareerID).Scan(&careerTitle, &companyName, &employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read owning career: %w", err)
	}

	archived := &model.ArchivedApplication{
		OriginalAppID: app.ID,
		FirstName:     app.FirstName,
		LastName:      app.LastName,
		PhoneNo:       app.PhoneNo,
		Email:         app.Email,
		UserName:      app.UserName,
		ResumePath:    app.ResumePath,
		CareerID:      app.CareerID,
		CareerTitle:   careerTitle,
		CompanyName:   companyName,
		EmployerID:    employerID,
		DateSubmitted: app.DateSubmitted,
	}

	err = tx.QueryRow(ctx, `
        INSERT INTO applicants (
            original_app_id, first_name, last_name, phone_no, email, user_name,
            resume_path, career_id, career_title, company_name, employer_id, date_submitted
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, archived_at
    `,
		archived.OriginalAppID, archived.FirstName, archived.LastName, archived.PhoneNo,
		archived.Email, archived.UserName, archived.ResumePath, archived.CareerID,
		archived.CareerTitle, archived.CompanyName, archived.EmployerID, archived.DateSubmitted,
	).Scan(&archived.ID, &archived.ArchivedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert archive row: %w", err)
	}

	applicant := app.FirstName + " " + app.LastName
	_, err = tx.Exec(ctx, `
        INSERT INTO notifications (name, link, message)
        VALUES ($1, $2, $3)
    `,
		"Job Applications",
		"admin-applications.html",
		fmt.Sprintf("%s applied for %s", applicant, careerTitle),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	payload := ApplicationSubmittedPayload{
		ApplicationID: app.ID,
		ApplicantName: applicant,
		CareerID:      app.CareerID,
		CareerTitle:   careerTitle,
		EmployerID:    employerID,
		SubmittedAt:   app.DateSubmitted,
	}
	if err := outbox.InsertEventInTx(ctx, tx, r.outbox, "application", &app.ID, mq.RoutingKeyApplicationSubmitted, payload); err != nil {
		return nil, fmt.Errorf("failed to stage outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return archived, nil
}

func scanArchivedRows(rows pgx.Rows) ([]model.ArchivedApplication, error) {
	defer rows.Close()

	var apps []model.ArchivedApplication
	for rows.Next() {
		var a model.ArchivedApplication
		err := rows.Scan(
			&a.ID, &a.OriginalAppID, &a.FirstName, &a.LastName, &a.PhoneNo, &a.Email,
			&a.UserName, &a.ResumePath, &a.CareerID, &a.CareerTitle, &a.CompanyName,
			&a.EmployerID, &a.DateSubmitted, &a.ArchivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

const archiveColumns = `
	id, original_app_id, first_name, last_name, phone_no, email,
	user_name, resume_path, career_id, career_title, company_name,
	employer_id, date_submitted, archived_at
`

// ListArchiveByEmployer returns the employer's submitted history from the
// archive, newest submission first. Sourced from the archive only, so it
// survives career deletion.
func (r *ApplicationRepository) ListArchiveByEmployer(ctx context.Context, employerID int64) ([]model.ArchivedApplication, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+archiveColumns+`
        FROM applicants
        WHERE employer_id = $1
        ORDER BY date_submitted DESC
    `, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	return scanArchivedRows(rows)
}

// ListArchiveByApplicant returns everything the applicant ever submitted.
func (r *ApplicationRepository) ListArchiveByApplicant(ctx context.Context, userName string) ([]model.ArchivedApplication, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+archiveColumns+`
        FROM applicants
        WHERE user_name = $1
        ORDER BY date_submitted DESC
    `, userName)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	return scanArchivedRows(rows)
}

// ListByCareer returns live applications for one career, newest first.
func (r *ApplicationRepository) ListByCareer(ctx context.Context, careerID int64) ([]model.Application, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, first_name, last_name, phone_no, email, user_name, career_id, resume_path, date_submitted
        FROM applications
        WHERE career_id = $1
        ORDER BY date_submitted DESC
    `, careerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	var apps []model.Application
	for rows.Next() {
		var a model.Application
		err := rows.Scan(
			&a.ID, &a.FirstName, &a.LastName, &a.PhoneNo, &a.Email,
			&a.UserName, &a.CareerID, &a.ResumePath, &a.DateSubmitted,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
