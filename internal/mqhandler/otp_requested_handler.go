package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"alumniportal/internal/mailer"
	"alumniportal/pkg/circuitbreaker"
	"alumniportal/pkg/mq"
)

// OTPRequestedHandler delivers reset codes by mail. The SMTP relay sits
// behind a circuit breaker; while it is open, deliveries fail fast and the
// message is requeued.
type OTPRequestedHandler struct {
	mailer  mailer.Mailer
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewOTPRequestedHandler(m mailer.Mailer, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) *OTPRequestedHandler {
	return &OTPRequestedHandler{
		mailer:  m,
		breaker: breaker,
		logger:  logger,
	}
}

type otpRequestedPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *OTPRequestedHandler) HandleOTPRequested(ctx context.Context, raw json.RawMessage) error {
	var p otpRequestedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.logger.Error("Failed to unmarshal otp requested payload",
			zap.Error(err),
			zap.String("raw_payload", string(raw)),
		)
		// malformed payload, redelivery cannot help
		return fmt.Errorf("%w: %v", mq.ErrNonRetryable, err)
	}

	err := h.breaker.Execute(func() error {
		return h.mailer.SendOTP(p.Email, p.Code)
	})
	if err != nil {
		h.logger.Error("Failed to deliver reset code",
			zap.String("email", p.Email),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("Reset code delivered", zap.String("email", p.Email))
	return nil
}
