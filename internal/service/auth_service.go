package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"alumniportal/internal/model"
	"alumniportal/pkg/rbac"
	"alumniportal/pkg/util"
)

// UserStore is the persistence surface for alumni accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByUserName(ctx context.Context, userName string) (*model.User, error)
	UpdatePassword(ctx context.Context, userName, passwordHash string) (bool, error)
}

// AuthService issues capability tokens for alumni, employers and admins.
type AuthService struct {
	users     UserStore
	employers EmployerStore
	jwtSecret string
	adminUser string
	adminHash string
	logger    *zap.Logger
}

func NewAuthService(users UserStore, employers EmployerStore, jwtSecret, adminUser, adminHash string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		employers: employers,
		jwtSecret: jwtSecret,
		adminUser: adminUser,
		adminHash: adminHash,
		logger:    logger,
	}
}

// AlumniRegisterRequest carries a new alumni registration.
type AlumniRegisterRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	PersonalEmail string `json:"personal_email"`
	UserName      string `json:"user_name"`
	Password      string `json:"password"`
}

// LoginResult pairs the issued token with the principal's role.
type LoginResult struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	UserName   string `json:"user_name"`
	EmployerID int64  `json:"employer_id,omitempty"`
}

// RegisterAlumni creates an alumni account. Handles are unique.
func (s *AuthService) RegisterAlumni(ctx context.Context, req AlumniRegisterRequest) (*model.User, error) {
	if req.UserName == "" || req.Password == "" || req.PersonalEmail == "" {
		return nil, fmt.Errorf("%w: user name, email and password are required", ErrValidation)
	}

	existing, err := s.users.FindByUserName(ctx, req.UserName)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user name already taken", ErrConflict)
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PersonalEmail: req.PersonalEmail,
		UserName:      req.UserName,
		PasswordHash:  hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginAlumni authenticates an alumni handle and issues a token.
func (s *AuthService) LoginAlumni(ctx context.Context, userName, password string) (*LoginResult, error) {
	u, err := s.users.FindByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if !util.CheckPassword(password, u.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := util.GenerateJWT(u.UserName, rbac.RoleAlumni, 0, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: rbac.RoleAlumni, UserName: u.UserName}, nil
}

// LoginEmployer authenticates an employer. Only ACCEPTED accounts may log
// in; the token carries the numeric employer id as the sole identity used
// for ownership checks downstream.
func (s *AuthService) LoginEmployer(ctx context.Context, userID, password string) (*LoginResult, error) {
	e, err := s.employers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, err
	}
	if !util.CheckPassword(password, e.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if e.Status != model.EmployerStatusAccepted {
		return nil, fmt.Errorf("%w: account is %s", ErrUnauthorized, e.Status)
	}

	token, err := util.GenerateJWT(e.UserID, rbac.RoleEmployer, e.ID, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: rbac.RoleEmployer, UserName: e.UserID, EmployerID: e.ID}, nil
}

// LoginAdmin authenticates against the configured admin credentials.
func (s *AuthService) LoginAdmin(ctx context.Context, userName, password string) (*LoginResult, error) {
	if userName != s.adminUser || !util.CheckPassword(password, s.adminHash) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := util.GenerateJWT(userName, rbac.RoleAdmin, 0, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: rbac.RoleAdmin, UserName: userName}, nil
}
