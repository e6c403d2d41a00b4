// Package transfer sequences a single money transfer through account
// resolution, risk evaluation, the balance check and the atomic commit.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "ledgerguard/internal/errors"
	"ledgerguard/internal/logging"
	"ledgerguard/internal/metrics"
	"ledgerguard/internal/models"
	"ledgerguard/internal/services/alerts"
	"ledgerguard/internal/services/history"
	"ledgerguard/internal/services/ledger"
	"ledgerguard/internal/services/risk"

	"github.com/shopspring/decimal"
)

// Service executes transfers.
type Service interface {
	// Transfer runs one request to a terminal state. Business outcomes are
	// reported in Outcome; the error is reserved for internal faults.
	Transfer(ctx context.Context, fromEmail, toEmail string, amount decimal.Decimal) (Outcome, error)
}

// Config for the transfer service
type Config struct {
	Risk    risk.Config
	Logger  *slog.Logger
	Metrics metrics.MetricsCollector
	Alerts  alerts.Service
}

type service struct {
	store   ledger.Store
	log     history.Log
	check   *risk.RecencyWindowCheck
	alerts  alerts.Service
	logger  *slog.Logger
	metrics metrics.MetricsCollector
}

// NewService creates a transfer service.
func NewService(store ledger.Store, log history.Log, cfg Config) Service {
	if store == nil {
		panic("ledger store is required")
	}
	if log == nil {
		panic("history log is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &metrics.NoopMetricsCollector{}
	}
	if cfg.Alerts == nil {
		cfg.Alerts = alerts.NewService(nil, cfg.Logger)
	}

	return &service{
		store:   store,
		log:     log,
		check:   risk.NewRecencyWindowCheck(cfg.Risk),
		alerts:  cfg.Alerts,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

func (s *service) Transfer(ctx context.Context, fromEmail, toEmail string, amount decimal.Decimal) (Outcome, error) {
	start := time.Now()
	out := Outcome{
		State:     StateValidating,
		Amount:    amount,
		FromEmail: models.NormalizeEmail(fromEmail),
		ToEmail:   models.NormalizeEmail(toEmail),
	}

	out, err := s.run(ctx, out)

	s.metrics.RecordOperationDuration("transfer", time.Since(start))
	if err != nil {
		s.metrics.RecordError("transfer", "internal")
		s.logger.Error("transfer failed", "from", out.FromEmail, "to", out.ToEmail, "amount", amount.String(), "state", out.State, "error", err)
		return out, err
	}
	s.metrics.RecordOperationResult("transfer", string(out.State))
	s.logger.Info("transfer finished",
		"from", out.FromEmail,
		"to", out.ToEmail,
		"amount", amount.String(),
		"state", out.State,
		"reason", out.Reason,
	)
	return out, nil
}

func (s *service) run(ctx context.Context, out Outcome) (Outcome, error) {
	// Validating -> AccountsResolved
	from, err := s.store.GetAccount(ctx, out.FromEmail)
	if err != nil {
		return reject(out, ReasonSenderNotFound, err)
	}
	to, err := s.store.GetAccount(ctx, out.ToEmail)
	if err != nil {
		return reject(out, ReasonRecipientNotFound, err)
	}
	out.FromName, out.ToName = from.FullName, to.FullName
	out.State = StateAccountsResolved

	// AccountsResolved -> RiskChecked
	recent, err := s.log.RecentBySender(ctx, from.Email, s.check.Window)
	if err != nil {
		return out, fmt.Errorf("load sender history: %w", err)
	}
	verdict := s.check.Evaluate(out.Amount, history.Amounts(recent))
	out.Verdict = &verdict
	s.metrics.RecordRiskDecision(risk.CheckRecencyWindow, string(verdict.Outcome))
	if verdict.Flagged() {
		return s.block(ctx, out)
	}
	out.State = StateRiskChecked

	// RiskChecked -> BalanceChecked
	if from.Balance.LessThan(out.Amount) {
		out.State = StateRejected
		out.Reason = ReasonInsufficientFunds
		return out, nil
	}
	out.State = StateBalanceChecked

	// BalanceChecked -> Committed
	if err := s.store.ApplyTransfer(ctx, from.Email, to.Email, out.Amount); err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientFunds):
			out.State = StateRejected
			out.Reason = ReasonInsufficientFunds
			return out, nil
		case errors.Is(err, ledger.ErrAccountNotFound):
			return out, fmt.Errorf("%w: account vanished during transfer: %v", apperrors.ErrInternal, err)
		default:
			return out, fmt.Errorf("apply transfer: %w", err)
		}
	}

	rec, err := s.append(ctx, out, models.TransferStatusCompleted)
	if err != nil {
		return out, err
	}
	out.Record = &rec
	out.State = StateCommitted
	s.metrics.RecordTransaction("transfer", out.Amount)
	return out, nil
}

func (s *service) block(ctx context.Context, out Outcome) (Outcome, error) {
	rec, err := s.append(ctx, out, models.TransferStatusBlockedFraud)
	if err != nil {
		return out, err
	}
	out.Record = &rec
	out.State = StateBlocked

	// Delivery failures are logged by the alert service; the block stands.
	_, _ = s.alerts.SendFraudAlert(ctx, out.FromEmail, out.Verdict.Reason)
	_, _ = s.alerts.HumanInLoopReview(ctx, out.FromEmail, out.Amount)
	return out, nil
}

func (s *service) append(ctx context.Context, out Outcome, status models.TransferStatus) (models.TransferRecord, error) {
	rec, err := s.log.Append(ctx, models.TransferRecord{
		FromEmail: out.FromEmail,
		FromName:  out.FromName,
		ToEmail:   out.ToEmail,
		ToName:    out.ToName,
		Amount:    out.Amount,
		Status:    status,
	})
	if err != nil {
		return rec, fmt.Errorf("append transfer record: %w", err)
	}
	return rec, nil
}

func reject(out Outcome, reason RejectReason, err error) (Outcome, error) {
	if !errors.Is(err, ledger.ErrAccountNotFound) && !errors.Is(err, ledger.ErrInvalidEmail) {
		return out, fmt.Errorf("resolve account: %w", err)
	}
	out.State = StateRejected
	out.Reason = reason
	return out, nil
}
