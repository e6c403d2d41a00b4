// Package banking is the operation surface of the ledger: account opening,
// lookups, transfers and the standalone fraud checks, each reported as a
// Result with a human-readable message.
package banking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "ledgerguard/internal/errors"
	"ledgerguard/internal/logging"
	"ledgerguard/internal/metrics"
	"ledgerguard/internal/models"
	"ledgerguard/internal/services/alerts"
	"ledgerguard/internal/services/history"
	"ledgerguard/internal/services/ledger"
	"ledgerguard/internal/services/risk"
	"ledgerguard/internal/services/transfer"

	"github.com/shopspring/decimal"
)

// Service defines the banking operations. The error return is reserved for
// internal faults; business outcomes are reported in the Result.
type Service interface {
	CreateAccount(ctx context.Context, in models.NewAccount) (Result, error)
	ViewAccount(ctx context.Context, email string) (Result, error)
	ListAccounts(ctx context.Context) (Result, error)
	TransferHistory(ctx context.Context, email string) (Result, error)
	TransferMoney(ctx context.Context, fromEmail, toEmail string, amount decimal.Decimal) (Result, error)

	// CheckTransferPattern and DetectAmountSpike reject a non-positive amount
	// with INVALID_AMOUNT ahead of any insufficient-history advisory.
	CheckTransferPattern(ctx context.Context, userID string, amount decimal.Decimal) (Result, error)
	DetectAmountSpike(ctx context.Context, userID string, amount decimal.Decimal) (Result, error)
	ScreenSignup(ctx context.Context, userID, email, ip string) (Result, error)
}

// Config for the banking service
type Config struct {
	Risk    risk.Config
	Logger  *slog.Logger
	Metrics metrics.MetricsCollector
	Alerts  alerts.Service
}

type service struct {
	store     ledger.Store
	log       history.Log
	amounts   risk.AmountHistory
	transfers transfer.Service
	accounts  *risk.AccountEvaluator
	pattern   *risk.DeviationCheck
	spike     *risk.SpikeCheck
	alerts    alerts.Service
	risk      risk.Config
	logger    *slog.Logger
}

// NewService wires the banking operations over the given stores.
func NewService(store ledger.Store, log history.Log, amounts risk.AmountHistory, cfg Config) Service {
	if store == nil {
		panic("ledger store is required")
	}
	if log == nil {
		panic("history log is required")
	}
	if amounts == nil {
		panic("amount history is required")
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
	cfg.Risk = cfg.Risk.WithDefaults()

	return &service{
		store:   store,
		log:     log,
		amounts: amounts,
		transfers: transfer.NewService(store, log, transfer.Config{
			Risk:    cfg.Risk,
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
			Alerts:  cfg.Alerts,
		}),
		accounts: risk.NewAccountEvaluator(cfg.Risk, cfg.Logger, cfg.Metrics),
		pattern:  risk.NewDeviationCheck(cfg.Risk),
		spike:    risk.NewSpikeCheck(cfg.Risk, amounts, cfg.Logger, cfg.Metrics),
		alerts:   cfg.Alerts,
		risk:     cfg.Risk,
		logger:   cfg.Logger,
	}
}

func (s *service) CreateAccount(ctx context.Context, in models.NewAccount) (Result, error) {
	assessment := s.accounts.Evaluate(in)
	if assessment.Denied {
		r := fail(apperrors.CodeFraudBlocked, "Account creation denied: This account has been flagged as potentially fraudulent!")
		r.Assessment = &assessment
		return r, nil
	}

	acct, err := s.store.CreateAccount(ctx, in)
	if err != nil {
		var r Result
		switch {
		case errors.Is(err, ledger.ErrAccountExists):
			r = fail(apperrors.CodeAlreadyExists, fmt.Sprintf("Account creation failed: An account already exists for %s", models.NormalizeEmail(in.Email)))
		case errors.Is(err, ledger.ErrInvalidEmail):
			r = fail(apperrors.CodeInvalidRequest, "Account creation failed: an email address is required")
		case errors.Is(err, ledger.ErrInvalidAmount):
			r = fail(apperrors.CodeInvalidAmount, "Account creation failed: the starting balance cannot be negative")
		default:
			return Result{}, fmt.Errorf("create account: %w", err)
		}
		r.Assessment = &assessment
		return r, nil
	}

	r := ok(fmt.Sprintf("Account successfully created for %s with starting balance %s", acct.FullName, models.FormatAmount(acct.Balance)))
	r.Account = acct
	r.Assessment = &assessment
	return r, nil
}

func (s *service) ViewAccount(ctx context.Context, email string) (Result, error) {
	acct, err := s.store.GetAccount(ctx, email)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) || errors.Is(err, ledger.ErrInvalidEmail) {
			return fail(apperrors.CodeNotFound, fmt.Sprintf("No account found with email: %s", email)), nil
		}
		return Result{}, fmt.Errorf("view account: %w", err)
	}

	r := ok(fmt.Sprintf("Account found:\n- Name: %s\n- Email: %s\n- Phone: %s\n- Address: %s\n- Balance: %s",
		acct.FullName, acct.Email, acct.Phone, acct.Address, models.FormatAmount(acct.Balance)))
	r.Account = acct
	return r, nil
}

func (s *service) ListAccounts(ctx context.Context) (Result, error) {
	accts, err := s.store.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list accounts: %w", err)
	}
	r := ok(fmt.Sprintf("%d accounts", len(accts)))
	r.Accounts = accts
	return r, nil
}

func (s *service) TransferHistory(ctx context.Context, email string) (Result, error) {
	if _, err := s.store.GetAccount(ctx, email); err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) || errors.Is(err, ledger.ErrInvalidEmail) {
			return fail(apperrors.CodeNotFound, fmt.Sprintf("No account found with email: %s", email)), nil
		}
		return Result{}, fmt.Errorf("transfer history: %w", err)
	}
	records, err := s.log.ForAccount(ctx, email)
	if err != nil {
		return Result{}, fmt.Errorf("transfer history: %w", err)
	}
	r := ok(fmt.Sprintf("%d transfers for %s", len(records), models.NormalizeEmail(email)))
	r.Records = records
	return r, nil
}

func (s *service) TransferMoney(ctx context.Context, fromEmail, toEmail string, amount decimal.Decimal) (Result, error) {
	out, err := s.transfers.Transfer(ctx, fromEmail, toEmail, amount)
	if err != nil {
		return Result{}, err
	}

	var r Result
	switch out.State {
	case transfer.StateCommitted:
		r = ok(fmt.Sprintf("Transferred %s from %s to %s", models.FormatAmount(out.Amount), out.FromName, out.ToName))
	case transfer.StateBlocked:
		r = fail(apperrors.CodeOf(out.Err()), "Transfer denied: Transfer has been flagged as potentially fraudulent! Forwarding to Human analyst")
	default:
		switch out.Reason {
		case transfer.ReasonSenderNotFound:
			r = fail(apperrors.CodeNotFound, fmt.Sprintf("Sender account %s not found.", fromEmail))
		case transfer.ReasonRecipientNotFound:
			r = fail(apperrors.CodeNotFound, fmt.Sprintf("Recipient account %s not found.", toEmail))
		default:
			r = fail(apperrors.CodeInsufficientFunds, fmt.Sprintf("Insufficient balance in %s's account.", fromEmail))
		}
	}
	r.Transfer = &out
	return r, nil
}

// CheckTransferPattern compares amount with the user's amount history.
// A non-positive amount is rejected with INVALID_AMOUNT before the history
// is consulted, even for a user with no history yet.
func (s *service) CheckTransferPattern(ctx context.Context, userID string, amount decimal.Decimal) (Result, error) {
	if !amount.IsPositive() {
		return fail(apperrors.CodeInvalidAmount, "Amount must be greater than zero."), nil
	}
	amounts, err := s.amounts.Amounts(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("check transfer pattern: %w", err)
	}

	v := s.pattern.Evaluate(amount, amounts)
	var r Result
	switch v.Outcome {
	case risk.OutcomeInsufficientHistory:
		r = ok("Not enough history to evaluate pattern. Proceed with caution.")
		r.Code = apperrors.CodeInsufficientHistory
	case risk.OutcomeFlagged:
		r = fail(apperrors.CodeFraudBlocked, fmt.Sprintf("Pattern anomaly: Current amount %s deviates from normal range.", models.FormatAmount(amount)))
	default:
		r = ok(fmt.Sprintf("Transfer %s matches user %s's historical pattern.", models.FormatAmount(amount), userID))
	}
	r.Verdict = &v
	return r, nil
}

// DetectAmountSpike records amount in the user's history unless it is a
// spike. A non-positive amount is rejected with INVALID_AMOUNT and never
// recorded, even for a user with no history yet.
func (s *service) DetectAmountSpike(ctx context.Context, userID string, amount decimal.Decimal) (Result, error) {
	if !amount.IsPositive() {
		return fail(apperrors.CodeInvalidAmount, "Amount must be greater than zero."), nil
	}
	v, err := s.spike.Observe(ctx, userID, amount)
	if err != nil {
		return Result{}, fmt.Errorf("detect amount spike: %w", err)
	}

	var r Result
	switch v.Outcome {
	case risk.OutcomeInsufficientHistory:
		r = ok(fmt.Sprintf("New user, added %s to history.", models.FormatAmount(amount)))
		r.Code = apperrors.CodeInsufficientHistory
	case risk.OutcomeFlagged:
		alert, _ := s.alerts.HumanInLoopReview(ctx, userID, amount)
		r = fail(apperrors.CodeFraudBlocked, fmt.Sprintf("Transfer blocked! %s is a %sx spike over average (%s).\nAction Required: %s",
			models.FormatAmount(amount), s.risk.SpikeMultiplier.String(), models.FormatAmount(v.Baseline), alert.Message))
		r.Alert = &alert
	default:
		r = ok(fmt.Sprintf("No spike detected. %s added to history.", models.FormatAmount(amount)))
	}
	r.Verdict = &v
	return r, nil
}

func (s *service) ScreenSignup(ctx context.Context, userID, email, ip string) (Result, error) {
	sr := risk.ScreenSignup(s.risk, userID, email, ip)
	var r Result
	if sr.Flagged {
		alert, _ := s.alerts.SendFraudAlert(ctx, userID, "signup_screen")
		r = fail(apperrors.CodeFraudBlocked, fmt.Sprintf("Account flagged: suspicious email/IP. %s denied.", userID))
		r.Alert = &alert
	} else {
		r = ok(fmt.Sprintf("Account creation for %s allowed.", userID))
	}
	s.logger.Info("signup screened", "user_id", userID, "flagged", sr.Flagged, "disposable_email", sr.DisposableEmail, "blocked_ip", sr.BlockedIP)
	r.Screen = &sr
	return r, nil
}
