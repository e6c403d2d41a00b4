// Package auth authenticates operators against a bcrypt-hashed shared key
// and issues short-lived bearer tokens.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ledgerguard/internal/logging"
	"ledgerguard/internal/models"
	"ledgerguard/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("operator login is not configured")
)

type Service interface {
	Login(ctx context.Context, operatorID, key string) (string, *models.OperatorClaims, error)
	Verify(token string) (*models.OperatorClaims, error)
}

// Config for the auth service
type Config struct {
	JWTSecret       string
	OperatorKeyHash string
	OperatorRole    string
	TokenTTL        time.Duration
	Logger          *slog.Logger
}

type service struct {
	cfg Config
}

func NewService(cfg Config) Service {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.OperatorRole == "" {
		cfg.OperatorRole = models.RoleAgent
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 15 * time.Minute
	}
	return &service{cfg: cfg}
}

func (s *service) Login(_ context.Context, operatorID, key string) (string, *models.OperatorClaims, error) {
	if s.cfg.OperatorKeyHash == "" || s.cfg.JWTSecret == "" {
		return "", nil, ErrLoginDisabled
	}
	if !utils.CheckOperatorKey(s.cfg.OperatorKeyHash, key) {
		s.cfg.Logger.Warn("login failed", "operator_id", operatorID)
		return "", nil, ErrInvalidCredentials
	}

	token, claims, err := utils.GenerateToken(s.cfg.JWTSecret, s.cfg.TokenTTL, operatorID, s.cfg.OperatorRole)
	if err != nil {
		return "", nil, err
	}
	s.cfg.Logger.Info("operator logged in", "operator_id", operatorID, "role", claims.Role)
	return token, claims, nil
}

// Verify rejects every token when no signing secret is configured.
func (s *service) Verify(token string) (*models.OperatorClaims, error) {
	if s.cfg.JWTSecret == "" {
		return nil, ErrInvalidCredentials
	}
	return utils.ParseToken(s.cfg.JWTSecret, token)
}
