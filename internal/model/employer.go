package model

import "time"

// Employer account statuses set by admin moderation.
const (
	EmployerStatusPending  = "PENDING"
	EmployerStatusAccepted = "ACCEPTED"
	EmployerStatusDeclined = "DECLINED"
	EmployerStatusArchived = "ARCHIVED"
)

// Employer is a company account. The Pending* fields are shadow columns
// holding staged edits that only an admin approval applies to the live
// fields; nil means nothing is staged.
type Employer struct {
	ID              int64     `json:"id"`
	EmployerName    string    `json:"employer_name"`
	BusinessName    string    `json:"business_name"`
	BusinessAddress string    `json:"business_address"`
	LandlineNo      string    `json:"landline_no"`
	MobileNo        string    `json:"mobile_no"`
	CompanyEmail    string    `json:"company_email"`
	CompanyWebsite  string    `json:"company_website"`
	UserID          string    `json:"user_id"`
	PasswordHash    string    `json:"-"`
	CompanyLogo     string    `json:"company_logo"`
	Status          string    `json:"status"`
	ProfileConfirmed bool     `json:"profile_confirmed"`
	SubmittedAt     time.Time `json:"submitted_at"`

	PendingLandlineNo   *string `json:"pending_landline_no,omitempty"`
	PendingMobileNo     *string `json:"pending_mobile_no,omitempty"`
	PendingCompanyEmail *string `json:"pending_company_email,omitempty"`
	PendingCompanyLogo  *string `json:"pending_company_logo,omitempty"`
}

// ChangeRequest is a partial staging proposal. Nil fields are left
// untouched; non-nil fields overwrite any previous unapproved value.
type ChangeRequest struct {
	LandlineNo   *string `json:"landline_no,omitempty"`
	MobileNo     *string `json:"mobile_no,omitempty"`
	CompanyEmail *string `json:"company_email,omitempty"`
	CompanyLogo  *string `json:"company_logo,omitempty"`
}

// Empty reports whether no field is present.
func (c ChangeRequest) Empty() bool {
	return c.LandlineNo == nil && c.MobileNo == nil && c.CompanyEmail == nil && c.CompanyLogo == nil
}

// HasPendingProfile reports whether any contact field is staged.
func (e *Employer) HasPendingProfile() bool {
	return e.PendingLandlineNo != nil || e.PendingMobileNo != nil || e.PendingCompanyEmail != nil
}

// HasPendingLogo reports whether a logo replacement is staged.
func (e *Employer) HasPendingLogo() bool {
	return e.PendingCompanyLogo != nil
}
