package banking

import (
	"context"
	"testing"

	apperrors "ledgerguard/internal/errors"
	"ledgerguard/internal/models"
	"ledgerguard/internal/services/alerts"
	"ledgerguard/internal/services/history"
	"ledgerguard/internal/services/ledger"
	"ledgerguard/internal/services/risk"
	"ledgerguard/internal/services/transfer"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (Service, *alerts.Recorder, history.Log) {
	t.Helper()
	rec := &alerts.Recorder{}
	log := history.NewLog()
	svc := NewService(ledger.NewStore(nil), log, risk.NewMemoryAmountHistory(0), Config{
		Alerts: alerts.NewService(rec, nil),
	})
	return svc, rec, log
}

func application(name, email, balance string) models.NewAccount {
	return models.NewAccount{
		FullName:       name,
		Address:        "12 Marina Road, Lagos",
		Phone:          "08012345678",
		Email:          email,
		InitialBalance: dec(balance),
	}
}

func mustOpen(t *testing.T, svc Service, name, email, balance string) {
	t.Helper()
	r, err := svc.CreateAccount(context.Background(), application(name, email, balance))
	require.NoError(t, err)
	require.True(t, r.Success, r.Message)
}

func TestService_CreateAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	r, err := svc.CreateAccount(ctx, application("Ada Obi", "ada@ext.com", "1500"))
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, "Account successfully created for Ada Obi with starting balance ₦1,500.00", r.Message)
	require.NotNil(t, r.Account)
	assert.Equal(t, "ada@ext.com", r.Account.Email)
	assert.Equal(t, 0, r.Assessment.Score)

	r, err = svc.CreateAccount(ctx, application("Ada Obi", "ADA@ext.com", "10"))
	require.NoError(t, err)
	assert.False(t, r.Success)
	assert.Equal(t, apperrors.CodeAlreadyExists, r.Code)
	assert.Equal(t, "Account creation failed: An account already exists for ada@ext.com", r.Message)
}

func TestService_CreateAccountDenied(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	app := application("John Doe", "john@gmail.com", "200000")
	app.Address = "Ikeja"
	r, err := svc.CreateAccount(ctx, app)
	require.NoError(t, err)
	assert.False(t, r.Success)
	assert.Equal(t, apperrors.CodeFraudBlocked, r.Code)
	assert.Equal(t, 6, r.Assessment.Score)

	view, err := svc.ViewAccount(ctx, "john@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, apperrors.CodeNotFound, view.Code, "denied applications never reach the ledger")

	app.InitialBalance = dec("50000")
	r, err = svc.CreateAccount(ctx, app)
	require.NoError(t, err)
	assert.True(t, r.Success, r.Message)
	assert.Equal(t, 3, r.Assessment.Score)
}

func TestService_ViewAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	mustOpen(t, svc, "Ada Obi", "ada@ext.com", "2500.5")

	r, err := svc.ViewAccount(ctx, " Ada@Ext.com")
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Contains(t, r.Message, "- Name: Ada Obi")
	assert.Contains(t, r.Message, "- Balance: ₦2,500.50")

	r, err = svc.ViewAccount(ctx, "nobody@ext.com")
	require.NoError(t, err)
	assert.False(t, r.Success)
	assert.Equal(t, "No account found with email: nobody@ext.com", r.Message)
}

func TestService_TransferMoney(t *testing.T) {
	ctx := context.Background()
	svc, rec, log := newTestService(t)
	mustOpen(t, svc, "Ada Obi", "ada@ext.com", "1000")
	mustOpen(t, svc, "Bola Ade", "bola@ext.com", "0")

	r, err := svc.TransferMoney(ctx, "ada@ext.com", "bola@ext.com", dec("100"))
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, "Transferred ₦100.00 from Ada Obi to Bola Ade", r.Message)
	assert.Equal(t, transfer.StateCommitted, r.Transfer.State)

	r, err = svc.TransferMoney(ctx, "ghost@ext.com", "bola@ext.com", dec("1"))
	require.NoError(t, err)
	assert.Equal(t, "Sender account ghost@ext.com not found.", r.Message)
	assert.Equal(t, apperrors.CodeNotFound, r.Code)

	r, err = svc.TransferMoney(ctx, "ada@ext.com", "ghost@ext.com", dec("1"))
	require.NoError(t, err)
	assert.Equal(t, "Recipient account ghost@ext.com not found.", r.Message)

	r, err = svc.TransferMoney(ctx, "bola@ext.com", "ada@ext.com", dec("500"))
	require.NoError(t, err)
	assert.Equal(t, apperrors.CodeInsufficientFunds, r.Code)
	assert.Equal(t, "Insufficient balance in bola@ext.com's account.", r.Message)

	for i := 0; i < 2; i++ {
		_, err = svc.TransferMoney(ctx, "ada@ext.com", "bola@ext.com", dec("100"))
		require.NoError(t, err)
	}
	r, err = svc.TransferMoney(ctx, "ada@ext.com", "bola@ext.com", dec("301"))
	require.NoError(t, err)
	assert.Equal(t, apperrors.CodeFraudBlocked, r.Code)
	assert.Equal(t, "Transfer denied: Transfer has been flagged as potentially fraudulent! Forwarding to Human analyst", r.Message)
	assert.NotEmpty(t, rec.Alerts())

	r, err = svc.TransferMoney(ctx, "ada@ext.com", "bola@ext.com", dec("0"))
	require.NoError(t, err)
	assert.Equal(t, apperrors.CodeInvalidAmount, r.Code)

	assert.Equal(t, 5, log.Len())

	hist, err := svc.TransferHistory(ctx, "bola@ext.com")
	require.NoError(t, err)
	assert.Len(t, hist.Records, 5)
	assert.Equal(t, models.TransferStatusBlockedFraud, hist.Records[0].Status)
}

func TestService_TransferHistoryUnknownAccount(t *testing.T) {
	svc, _, _ := newTestService(t)

	r, err := svc.TransferHistory(context.Background(), "ghost@ext.com")
	require.NoError(t, err)
	assert.Equal(t, apperrors.CodeNotFound, r.Code)
}

func TestService_CheckTransferPattern(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	r, err := svc.CheckTransferPattern(ctx, "ada", dec("100"))
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, apperrors.CodeInsufficientHistory, r.Code)
	assert.Equal(t, "Not enough history to evaluate pattern. Proceed with caution.", r.Message)
	assert.Equal(t, risk.OutcomeInsufficientHistory, r.Verdict.Outcome)

	for _, a := range []string{"10", "20", "30"} {
		_, err := svc.DetectAmountSpike(ctx, "ada", dec(a))
		require.NoError(t, err)
	}

	r, err = svc.CheckTransferPattern(ctx, "ada", dec("36"))
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, "Transfer ₦36.00 matches user ada's historical pattern.", r.Message)

	r, err = svc.CheckTransferPattern(ctx, "ada", dec("37"))
	require.NoError(t, err)
	assert.False(t, r.Success)
	assert.Equal(t, "Pattern anomaly: Current amount ₦37.00 deviates from normal range.", r.Message)

	r, err = svc.CheckTransferPattern(ctx, "ada", dec("-1"))
	require.NoError(t, err)
	assert.Equal(t, apperrors.CodeInvalidAmount, r.Code)
}

func TestService_DetectAmountSpike(t *testing.T) {
	ctx := context.Background()
	svc, rec, _ := newTestService(t)

	r, err := svc.DetectAmountSpike(ctx, "ada", dec("100"))
	require.NoError(t, err)
	assert.Equal(t, "New user, added ₦100.00 to history.", r.Message)
	_, err = svc.DetectAmountSpike(ctx, "ada", dec("100"))
	require.NoError(t, err)

	r, err = svc.DetectAmountSpike(ctx, "ada", dec("301"))
	require.NoError(t, err)
	assert.False(t, r.Success)
	assert.Equal(t, apperrors.CodeFraudBlocked, r.Code)
	assert.Contains(t, r.Message, "Transfer blocked! ₦301.00 is a 3x spike over average (₦100.00).")
	assert.Contains(t, r.Message, "Human analyst has been notified")
	require.NotNil(t, r.Alert)
	assert.Equal(t, alerts.KindHumanReview, r.Alert.Kind)
	assert.Len(t, rec.Alerts(), 1)

	r, err = svc.DetectAmountSpike(ctx, "ada", dec("300"))
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, "No spike detected. ₦300.00 added to history.", r.Message)

	r, err = svc.DetectAmountSpike(ctx, "ada", dec("0"))
	require.NoError(t, err)
	assert.Equal(t, apperrors.CodeInvalidAmount, r.Code)
}

func TestService_ScreenSignup(t *testing.T) {
	ctx := context.Background()
	svc, rec, _ := newTestService(t)

	r, err := svc.ScreenSignup(ctx, "u-1", "ada@ext.com", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Equal(t, "Account creation for u-1 allowed.", r.Message)

	r, err = svc.ScreenSignup(ctx, "u-2", "ada@tempmail.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, r.Success)
	assert.Equal(t, "Account flagged: suspicious email/IP. u-2 denied.", r.Message)
	assert.True(t, r.Screen.DisposableEmail)
	assert.Len(t, rec.Alerts(), 1)
}

func TestService_ListAccounts(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustOpen(t, svc, "Bola Ade", "bola@ext.com", "1")
	mustOpen(t, svc, "Ada Obi", "ada@ext.com", "1")

	r, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Accounts, 2)
	assert.Equal(t, "ada@ext.com", r.Accounts[0].Email)
}

func TestService_NonPositiveAmountsForFreshUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for _, amount := range []string{"0", "-5"} {
		r, err := svc.CheckTransferPattern(ctx, "newcomer", dec(amount))
		require.NoError(t, err)
		assert.False(t, r.Success)
		assert.Equal(t, apperrors.CodeInvalidAmount, r.Code)

		r, err = svc.DetectAmountSpike(ctx, "newcomer", dec(amount))
		require.NoError(t, err)
		assert.False(t, r.Success)
		assert.Equal(t, apperrors.CodeInvalidAmount, r.Code)
	}

	r, err := svc.DetectAmountSpike(ctx, "newcomer", dec("10"))
	require.NoError(t, err)
	assert.Equal(t, "New user, added ₦10.00 to history.", r.Message)
	require.NotNil(t, r.Verdict)
	assert.Equal(t, risk.OutcomeInsufficientHistory, r.Verdict.Outcome)
}
