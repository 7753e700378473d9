package model

import "time"

// Career is a job posting owned by an employer.
type Career struct {
	ID          int64     `json:"id"`
	EmployerID  int64     `json:"employer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	DatePosted  time.Time `json:"date_posted"`
}
