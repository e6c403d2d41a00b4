// Package alerts escalates fraud incidents to monitoring, to the customer
// and to human reviewers.
package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledgerguard/internal/logging"
	"ledgerguard/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies an alert.
type Kind string

const (
	KindFraudAlert  Kind = "fraud_alert"
	KindChallenge   Kind = "challenge"
	KindHumanReview Kind = "human_review"
)

// Alert is one escalation event.
type Alert struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"created_at"`
}

// Escalator delivers alerts.
type Escalator interface {
	Escalate(ctx context.Context, a Alert) error
}

// Service raises alerts and hands them to an Escalator.
type Service interface {
	SendFraudAlert(ctx context.Context, userID, reason string) (Alert, error)
	ChallengeUser(ctx context.Context, userID string) (Alert, error)
	HumanInLoopReview(ctx context.Context, userID string, amount decimal.Decimal) (Alert, error)
}

type service struct {
	escalator Escalator
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates an alert service. A nil escalator only logs.
func NewService(escalator Escalator, logger *slog.Logger) Service {
	if logger == nil {
		logger = logging.Discard()
	}
	if escalator == nil {
		escalator = NewLogEscalator(logger)
	}
	return &service{escalator: escalator, logger: logger, now: time.Now}
}

func (s *service) SendFraudAlert(ctx context.Context, userID, reason string) (Alert, error) {
	return s.raise(ctx, Alert{
		Kind:    KindFraudAlert,
		UserID:  userID,
		Reason:  reason,
		Message: fmt.Sprintf("Fraud alert triggered for user %s. Incident logged.", userID),
	})
}

func (s *service) ChallengeUser(ctx context.Context, userID string) (Alert, error) {
	return s.raise(ctx, Alert{
		Kind:    KindChallenge,
		UserID:  userID,
		Message: fmt.Sprintf("Verification challenge issued to user %s.", userID),
	})
}

func (s *service) HumanInLoopReview(ctx context.Context, userID string, amount decimal.Decimal) (Alert, error) {
	return s.raise(ctx, Alert{
		Kind:   KindHumanReview,
		UserID: userID,
		Amount: amount,
		Message: fmt.Sprintf("Human analyst has been notified to review suspicious transfer of %s by %s. Awaiting decision.",
			models.FormatAmount(amount), userID),
	})
}

// raise stamps a and escalates it. The alert is returned even when delivery
// fails so callers can still report its message.
func (s *service) raise(ctx context.Context, a Alert) (Alert, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = s.now().UTC()
	if err := s.escalator.Escalate(ctx, a); err != nil {
		s.logger.Error("alert escalation failed", "alert_id", a.ID, "kind", a.Kind, "user_id", a.UserID, "error", err)
		return a, fmt.Errorf("escalate %s: %w", a.Kind, err)
	}
	return a, nil
}
