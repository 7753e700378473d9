package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alumniportal/internal/model"
	"alumniportal/pkg/metrics"
)

// Scopes an admin can act on. Logo and profile form independent staged
// field-groups with their own propose/approve/reject cycle.
const (
	ScopeLogo    = "logo"
	ScopeProfile = "profile"
)

var validStatuses = map[string]bool{
	model.EmployerStatusPending:  true,
	model.EmployerStatusAccepted: true,
	model.EmployerStatusDeclined: true,
	model.EmployerStatusArchived: true,
}

// ApprovalService is the approval authority: admin-only transitions of
// staged employer values into live state, plus account moderation.
type ApprovalService struct {
	employers     EmployerStore
	stager        FileStager
	notifications *NotificationService
	logger        *zap.Logger
}

func NewApprovalService(employers EmployerStore, stager FileStager, notifications *NotificationService, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{
		employers:     employers,
		stager:        stager,
		notifications: notifications,
		logger:        logger,
	}
}

// Approve commits staged values for the scope into the live record.
// Approving with nothing staged is an idempotent success.
func (s *ApprovalService) Approve(ctx context.Context, employerID int64, scope string) (*model.Employer, error) {
	var emp *model.Employer
	var err error

	switch scope {
	case ScopeLogo:
		var oldLogo string
		oldLogo, emp, err = s.employers.ApproveLogo(ctx, employerID)
		if err != nil {
			return nil, translateNotFound(err)
		}
		// release the replaced live logo unless it is the default;
		// failure is a cleanup warning, the approval already committed
		if oldLogo != "" && oldLogo != emp.CompanyLogo && !s.stager.IsDefault(oldLogo) {
			if rmErr := s.stager.Remove(oldLogo); rmErr != nil {
				s.logger.Warn("Could not delete replaced logo",
					zap.Int64("employer_id", employerID),
					zap.String("path", oldLogo),
					zap.Error(rmErr),
				)
			}
		}
	case ScopeProfile:
		emp, err = s.employers.ApproveProfile(ctx, employerID)
		if err != nil {
			return nil, translateNotFound(err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", ErrValidation, scope)
	}

	metrics.IncrementApprovalAction(scope, "approve")
	s.notifications.Emit(ctx,
		"Profile Changes",
		"employer-profile.html",
		fmt.Sprintf("Changes to %s were approved", emp.EmployerName),
	)

	return emp, nil
}

// Reject discards staged values for the scope without touching live state.
func (s *ApprovalService) Reject(ctx context.Context, employerID int64, scope string) error {
	switch scope {
	case ScopeLogo:
		stagedLogo, err := s.employers.RejectLogo(ctx, employerID)
		if err != nil {
			return translateNotFound(err)
		}
		if stagedLogo != "" {
			if rmErr := s.stager.Remove(stagedLogo); rmErr != nil {
				s.logger.Warn("Could not delete rejected staged logo",
					zap.Int64("employer_id", employerID),
					zap.String("path", stagedLogo),
					zap.Error(rmErr),
				)
			}
		}
	case ScopeProfile:
		if err := s.employers.RejectProfile(ctx, employerID); err != nil {
			return translateNotFound(err)
		}
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrValidation, scope)
	}

	metrics.IncrementApprovalAction(scope, "reject")
	return nil
}

// List returns a moderated, bounds-checked page of employers.
func (s *ApprovalService) List(ctx context.Context, search string, page, limit int) ([]model.Employer, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	employers, total, err := s.employers.List(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (total + limit - 1) / limit
	return employers, totalPages, nil
}

// Get returns one employer with live and staged values for the diff view.
func (s *ApprovalService) Get(ctx context.Context, employerID int64) (*model.Employer, error) {
	emp, err := s.employers.GetByID(ctx, employerID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return emp, nil
}

// UpdateStatus moves an account through PENDING -> ACCEPTED/DECLINED/ARCHIVED.
func (s *ApprovalService) UpdateStatus(ctx context.Context, employerID int64, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	if err := s.employers.UpdateStatus(ctx, employerID, status); err != nil {
		return translateNotFound(err)
	}

	s.notifications.Emit(ctx,
		"Employer Registrations",
		"admin-employer.html",
		fmt.Sprintf("Employer %d status updated to %s", employerID, status),
	)
	return nil
}

func (s *ApprovalService) Delete(ctx context.Context, employerID int64) error {
	return translateNotFound(s.employers.Delete(ctx, employerID))
}
