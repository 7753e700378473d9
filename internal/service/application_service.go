package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alumniportal/internal/model"
	"alumniportal/pkg/metrics"
)

// ApplicationStore guarantees the dual-write contract: every live
// application committed has exactly one archive row committed with it.
type ApplicationStore interface {
	SubmitWithArchive(ctx context.Context, app *model.Application) (*model.ArchivedApplication, error)
	ListArchiveByEmployer(ctx context.Context, employerID int64) ([]model.ArchivedApplication, error)
	ListArchiveByApplicant(ctx context.Context, userName string) ([]model.ArchivedApplication, error)
	ListByCareer(ctx context.Context, careerID int64) ([]model.Application, error)
}

// CareerStore resolves and manages job postings.
type CareerStore interface {
	Create(ctx context.Context, c *model.Career) error
	GetByID(ctx context.Context, id int64) (*model.Career, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]model.Career, error)
	ListPublic(ctx context.Context) ([]model.Career, error)
	Delete(ctx context.Context, id int64) error
}

// ApplicationService is the archiver: submissions are mirrored into the
// archive at insert time so history survives career deletion.
type ApplicationService struct {
	applications ApplicationStore
	careers      CareerStore
	logger       *zap.Logger
}

func NewApplicationService(applications ApplicationStore, careers CareerStore, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		careers:      careers,
		logger:       logger,
	}
}

// SubmitRequest carries one job-application submission.
type SubmitRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	PhoneNo    string `json:"phone_no"`
	Email      string `json:"email"`
	UserName   string `json:"user_name"`
	CareerID   int64  `json:"career_id"`
	ResumePath string `json:"resume_path"`
}

// Submit validates and stores an application together with its archive
// snapshot. Both writes commit or neither does; "submitted" is never
// reported without the archive row.
func (s *ApplicationService) Submit(ctx context.Context, req SubmitRequest) (*model.ArchivedApplication, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("%w: applicant name is required", ErrValidation)
	}
	if req.PhoneNo == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: contact information is required", ErrValidation)
	}
	if req.ResumePath == "" {
		return nil, fmt.Errorf("%w: a resume is required", ErrValidation)
	}

	if _, err := s.careers.GetByID(ctx, req.CareerID); err != nil {
		return nil, translateNotFound(err)
	}

	app := &model.Application{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PhoneNo:    req.PhoneNo,
		Email:      req.Email,
		UserName:   req.UserName,
		CareerID:   req.CareerID,
		ResumePath: req.ResumePath,
	}

	archived, err := s.applications.SubmitWithArchive(ctx, app)
	if err != nil {
		metrics.IncrementApplicationsSubmitted("failed")
		s.logger.Error("Application submission rolled back",
			zap.Int64("career_id", req.CareerID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.IncrementApplicationsSubmitted("success")
	return archived, nil
}

// ListForEmployer returns the employer's full submitted history from the
// archive, newest first.
func (s *ApplicationService) ListForEmployer(ctx context.Context, employerID int64) ([]model.ArchivedApplication, error) {
	return s.applications.ListArchiveByEmployer(ctx, employerID)
}

// ListForApplicant returns everything the applicant submitted, from the
// archive.
func (s *ApplicationService) ListForApplicant(ctx context.Context, userName string) ([]model.ArchivedApplication, error) {
	return s.applications.ListArchiveByApplicant(ctx, userName)
}

// ListForCareer returns live applications for a career the employer owns.
func (s *ApplicationService) ListForCareer(ctx context.Context, employerID, careerID int64) ([]model.Application, error) {
	career, err := s.careers.GetByID(ctx, careerID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if career.EmployerID != employerID {
		return nil, fmt.Errorf("%w: career %d is not owned by employer %d", ErrUnauthorized, careerID, employerID)
	}
	return s.applications.ListByCareer(ctx, careerID)
}

// CreateCareer posts a new career owned by the employer.
func (s *ApplicationService) CreateCareer(ctx context.Context, employerID int64, title, description, link string) (*model.Career, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	c := &model.Career{
		EmployerID:  employerID,
		Title:       title,
		Description: description,
		Link:        link,
	}
	if err := s.careers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCareers returns the employer's own postings.
func (s *ApplicationService) ListCareers(ctx context.Context, employerID int64) ([]model.Career, error) {
	return s.careers.ListByEmployer(ctx, employerID)
}

// ListPublicCareers returns the public job board.
func (s *ApplicationService) ListPublicCareers(ctx context.Context) ([]model.Career, error) {
	return s.careers.ListPublic(ctx)
}

// DeleteCareer removes a posting the employer owns. Live applications go
// with it; the archive keeps their history.
func (s *ApplicationService) DeleteCareer(ctx context.Context, employerID, careerID int64) error {
	career, err := s.careers.GetByID(ctx, careerID)
	if err != nil {
		return translateNotFound(err)
	}
	if career.EmployerID != employerID {
		return fmt.Errorf("%w: career %d is not owned by employer %d", ErrUnauthorized, careerID, employerID)
	}
	return translateNotFound(s.careers.Delete(ctx, careerID))
}
