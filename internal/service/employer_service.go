package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"alumniportal/internal/model"
	"alumniportal/pkg/util"
)

// EmployerStore is the persistence surface for employer accounts and their
// staged changes.
type EmployerStore interface {
	Create(ctx context.Context, e *model.Employer) error
	GetByID(ctx context.Context, id int64) (*model.Employer, error)
	GetByUserID(ctx context.Context, userID string) (*model.Employer, error)
	List(ctx context.Context, search string, limit, offset int) ([]model.Employer, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	StagePending(ctx context.Context, id int64, change model.ChangeRequest) (string, *model.Employer, error)
	ApproveProfile(ctx context.Context, id int64) (*model.Employer, error)
	ApproveLogo(ctx context.Context, id int64) (string, *model.Employer, error)
	RejectProfile(ctx context.Context, id int64) error
	RejectLogo(ctx context.Context, id int64) (string, error)
	Confirm(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) (bool, error)
	CountPending(ctx context.Context) (int, error)
}

// FileStager stores uploaded artifacts and releases orphaned ones.
type FileStager interface {
	Remove(path string) error
	IsDefault(path string) bool
}

// EmployerService is the pending-field manager: employer-facing operations
// that stage changes instead of touching the live record.
type EmployerService struct {
	employers     EmployerStore
	stager        FileStager
	notifications *NotificationService
	logger        *zap.Logger
}

func NewEmployerService(employers EmployerStore, stager FileStager, notifications *NotificationService, logger *zap.Logger) *EmployerService {
	return &EmployerService{
		employers:     employers,
		stager:        stager,
		notifications: notifications,
		logger:        logger,
	}
}

// RegisterRequest carries a new employer registration.
type RegisterRequest struct {
	EmployerName    string `json:"employer_name"`
	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	LandlineNo      string `json:"landline_no"`
	MobileNo        string `json:"mobile_no"`
	CompanyEmail    string `json:"company_email"`
	CompanyWebsite  string `json:"company_website"`
	UserID          string `json:"user_id"`
	Password        string `json:"password"`
}

// Register creates a PENDING employer account and notifies admins.
func (s *EmployerService) Register(ctx context.Context, req RegisterRequest) (*model.Employer, error) {
	if req.EmployerName == "" || req.UserID == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: employer name, user id and password are required", ErrValidation)
	}

	existing, err := s.employers.GetByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user id already taken", ErrConflict)
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	e := &model.Employer{
		EmployerName:    req.EmployerName,
		BusinessName:    req.BusinessName,
		BusinessAddress: req.BusinessAddress,
		LandlineNo:      req.LandlineNo,
		MobileNo:        req.MobileNo,
		CompanyEmail:    req.CompanyEmail,
		CompanyWebsite:  req.CompanyWebsite,
		UserID:          req.UserID,
		PasswordHash:    hash,
	}
	if err := s.employers.Create(ctx, e); err != nil {
		return nil, err
	}

	s.notifications.Emit(ctx,
		"Employer Registrations",
		"admin-employer.html",
		fmt.Sprintf("New employer registration received from %s", e.EmployerName),
	)

	return e, nil
}

// ProposeChange stages the provided fields for admin review. At least one
// field must be present; absent fields leave earlier proposals untouched.
// Live values are never modified here.
func (s *EmployerService) ProposeChange(ctx context.Context, employerID int64, change model.ChangeRequest) (*model.Employer, error) {
	if change.Empty() {
		return nil, fmt.Errorf("%w: at least one field must be provided", ErrValidation)
	}

	orphanedLogo, emp, err := s.employers.StagePending(ctx, employerID, change)
	if err != nil {
		return nil, translateNotFound(err)
	}

	// a re-proposed logo strands the previously staged upload
	if orphanedLogo != "" {
		if err := s.stager.Remove(orphanedLogo); err != nil {
			s.logger.Warn("Could not delete orphaned staged logo",
				zap.Int64("employer_id", employerID),
				zap.String("path", orphanedLogo),
				zap.Error(err),
			)
		}
	}

	s.notifications.Emit(ctx,
		"Profile Changes",
		"admin-employer.html",
		fmt.Sprintf("%s proposed profile changes awaiting review", emp.EmployerName),
	)

	return emp, nil
}

// PendingAndLive returns the employer with live values and any staged
// values side by side, for rendering the admin diff.
func (s *EmployerService) PendingAndLive(ctx context.Context, employerID int64) (*model.Employer, error) {
	emp, err := s.employers.GetByID(ctx, employerID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return emp, nil
}

// Confirm marks a profile confirmed. Requires a non-default live logo;
// already-confirmed profiles succeed without change (monotonic).
func (s *EmployerService) Confirm(ctx context.Context, employerID int64) error {
	emp, err := s.employers.GetByID(ctx, employerID)
	if err != nil {
		return translateNotFound(err)
	}

	if emp.ProfileConfirmed {
		return nil
	}

	if emp.CompanyLogo == "" || s.stager.IsDefault(emp.CompanyLogo) {
		return fmt.Errorf("%w: a company logo must be uploaded before confirming", ErrValidation)
	}

	return translateNotFound(s.employers.Confirm(ctx, employerID))
}
