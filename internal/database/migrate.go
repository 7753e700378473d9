package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var tables = map[string]string{
	"registration": `CREATE TABLE IF NOT EXISTS registration (
		id BIGSERIAL PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		personal_email VARCHAR(150) NOT NULL,
		user_name VARCHAR(100) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"employers": `CREATE TABLE IF NOT EXISTS employers (
		id BIGSERIAL PRIMARY KEY,
		employer_name VARCHAR(255) NOT NULL,
		business_name VARCHAR(255) NOT NULL,
		business_address VARCHAR(255) NOT NULL,
		landline_no VARCHAR(50) NOT NULL DEFAULT '',
		mobile_no VARCHAR(50) NOT NULL DEFAULT '',
		company_email VARCHAR(150) NOT NULL DEFAULT '',
		company_website VARCHAR(255) NOT NULL DEFAULT '',
		user_id VARCHAR(100) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		company_logo VARCHAR(255) NOT NULL DEFAULT '/images/default-logo.png',
		status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
		profile_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		pending_landline_no VARCHAR(50),
		pending_mobile_no VARCHAR(50),
		pending_company_email VARCHAR(150),
		pending_company_logo VARCHAR(255)
	)`,
	"careers": `CREATE TABLE IF NOT EXISTS careers (
		id BIGSERIAL PRIMARY KEY,
		employer_id BIGINT NOT NULL REFERENCES employers(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		link VARCHAR(255) NOT NULL DEFAULT '',
		date_posted TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"applications": `CREATE TABLE IF NOT EXISTS applications (
		id BIGSERIAL PRIMARY KEY,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		phone_no VARCHAR(50) NOT NULL,
		email VARCHAR(150) NOT NULL,
		user_name VARCHAR(100) NOT NULL DEFAULT '',
		career_id BIGINT NOT NULL REFERENCES careers(id) ON DELETE CASCADE,
		resume_path VARCHAR(255) NOT NULL,
		date_submitted TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"applicants": `CREATE TABLE IF NOT EXISTS applicants (
		id BIGSERIAL PRIMARY KEY,
		original_app_id BIGINT NOT NULL UNIQUE,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		phone_no VARCHAR(50) NOT NULL,
		email VARCHAR(150) NOT NULL,
		user_name VARCHAR(100) NOT NULL DEFAULT '',
		resume_path VARCHAR(255) NOT NULL,
		career_id BIGINT NOT NULL,
		career_title VARCHAR(255) NOT NULL,
		company_name VARCHAR(255) NOT NULL,
		employer_id BIGINT NOT NULL,
		date_submitted TIMESTAMPTZ NOT NULL,
		archived_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"notifications": `CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		link VARCHAR(255) NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"outbox_events": `CREATE TABLE IF NOT EXISTS outbox_events (
		id BIGSERIAL PRIMARY KEY,
		aggregate_type VARCHAR(100) NOT NULL,
		aggregate_id BIGINT,
		routing_key VARCHAR(100) NOT NULL,
		payload JSONB NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		retry_count INT NOT NULL DEFAULT 0,
		next_retry_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Tables with FK dependencies must be created after their referents.
var tableOrder = []string{
	"registration",
	"employers",
	"careers",
	"applications",
	"applicants",
	"notifications",
	"outbox_events",
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, name := range tableOrder {
		if _, err := pool.Exec(ctx, tables[name]); err != nil {
			return fmt.Errorf("failed to create table %s: %w", name, err)
		}
		logger.Info("Ensured table exists", zap.String("table", name))
	}
	return nil
}
