package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"alumniportal/internal/otp"
	"alumniportal/pkg/metrics"
	"alumniportal/pkg/mq"
	"alumniportal/pkg/util"
)

// OTPService drives the forgot-password flow: issue a short-lived code,
// verify it, and reset the password once.
type OTPService struct {
	store      otp.Store
	limiter    otp.Limiter
	users      UserStore
	employers  EmployerStore
	broadcast  Broadcaster
	expiry     time.Duration
	maxReqs    int
	rateWindow time.Duration
	logger     *zap.Logger
}

func NewOTPService(store otp.Store, limiter otp.Limiter, users UserStore, employers EmployerStore, broadcast Broadcaster, expiry, rateWindow time.Duration, maxReqs int, logger *zap.Logger) *OTPService {
	return &OTPService{
		store:      store,
		limiter:    limiter,
		users:      users,
		employers:  employers,
		broadcast:  broadcast,
		expiry:     expiry,
		maxReqs:    maxReqs,
		rateWindow: rateWindow,
		logger:     logger,
	}
}

// OTPRequestedPayload is handed to the mail worker over the exchange.
type OTPRequestedPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// generateCode returns a 6-digit code from a CSPRNG.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// lookupEmail resolves the handle against alumni first, then employers.
func (s *OTPService) lookupEmail(ctx context.Context, userName string) (string, error) {
	if u, err := s.users.FindByUserName(ctx, userName); err == nil {
		return u.PersonalEmail, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	e, err := s.employers.GetByUserID(ctx, userName)
	if err != nil {
		return "", translateNotFound(err)
	}
	return e.CompanyEmail, nil
}

// Request issues a reset code for the account behind the handle. The code
// is delivered asynchronously by the mail worker; the caller only learns
// whether a request was accepted.
func (s *OTPService) Request(ctx context.Context, userName string) error {
	if userName == "" {
		return fmt.Errorf("%w: user name is required", ErrValidation)
	}

	allowed, err := s.limiter.Allow(ctx, userName, s.maxReqs, s.rateWindow)
	if err != nil {
		return err
	}
	if !allowed {
		metrics.IncrementOTPRequests("rate_limited")
		return fmt.Errorf("%w: too many reset requests, try again later", ErrConflict)
	}

	email, err := s.lookupEmail(ctx, userName)
	if err != nil {
		metrics.IncrementOTPRequests("failed")
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, userName, code, s.expiry); err != nil {
		metrics.IncrementOTPRequests("failed")
		return err
	}

	if err := s.broadcast.Publish(mq.RoutingKeyOTPRequested, OTPRequestedPayload{Email: email, Code: code}); err != nil {
		metrics.IncrementOTPRequests("failed")
		s.logger.Error("Failed to dispatch reset code",
			zap.String("user_name", userName),
			zap.Error(err),
		)
		return err
	}

	metrics.IncrementOTPRequests("sent")
	return nil
}

// Verify checks a code without consuming it, so the UI can gate the reset
// form before the final submit.
func (s *OTPService) Verify(ctx context.Context, userName, code string) error {
	stored, err := s.store.Get(ctx, userName)
	if err != nil {
		if errors.Is(err, otp.ErrCodeNotFound) {
			return fmt.Errorf("%w: code expired or never issued", ErrUnauthorized)
		}
		return err
	}
	if stored != code {
		return fmt.Errorf("%w: incorrect code", ErrUnauthorized)
	}
	return nil
}

// Reset consumes the code and sets the new password on whichever account
// type owns the handle. The code is gone after this call, pass or fail
// the password update.
func (s *OTPService) Reset(ctx context.Context, userName, code, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: a new password is required", ErrValidation)
	}

	stored, err := s.store.Consume(ctx, userName)
	if err != nil {
		if errors.Is(err, otp.ErrCodeNotFound) {
			return fmt.Errorf("%w: code expired or never issued", ErrUnauthorized)
		}
		return err
	}
	if stored != code {
		return fmt.Errorf("%w: incorrect code", ErrUnauthorized)
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}

	updated, err := s.users.UpdatePassword(ctx, userName, hash)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}

	updated, err = s.employers.UpdatePassword(ctx, userName, hash)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}
