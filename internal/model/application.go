package model

import "time"

// Application is a live job-application row. It feeds active employer
// dashboards and may be deleted when its career is deleted.
type Application struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PhoneNo       string    `json:"phone_no"`
	Email         string    `json:"email"`
	UserName      string    `json:"user_name"`
	CareerID      int64     `json:"career_id"`
	ResumePath    string    `json:"resume_path"`
	DateSubmitted time.Time `json:"date_submitted"`
}

// ArchivedApplication is the immutable denormalized snapshot written in the
// same transaction as the live row. It survives career and application
// deletion and is the system of record for submitted history.
type ArchivedApplication struct {
	ID            int64     `json:"id"`
	OriginalAppID int64     `json:"original_app_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PhoneNo       string    `json:"phone_no"`
	Email         string    `json:"email"`
	UserName      string    `json:"user_name"`
	ResumePath    string    `json:"resume_path"`
	CareerID      int64     `json:"career_id"`
	CareerTitle   string    `json:"career_title"`
	CompanyName   string    `json:"company_name"`
	EmployerID    int64     `json:"employer_id"`
	DateSubmitted time.Time `json:"date_submitted"`
	ArchivedAt    time.Time `json:"archived_at"`
}
