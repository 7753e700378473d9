package model

import "time"

// User is an alumni registration account.
type User struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PersonalEmail string    `json:"personal_email"`
	UserName      string    `json:"user_name"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
