package utils

import (
	"errors"
	"time"

	"ledgerguard/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "ledgerguard-api"

// GenerateToken signs an access token for an operator.
func GenerateToken(secret string, ttl time.Duration, operatorID, role string) (string, *models.OperatorClaims, error) {
	if secret == "" {
		return "", nil, errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	claims := &models.OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   operatorID,
		},
		OperatorID:  operatorID,
		Role:        role,
		Permissions: models.GetDefaultPermissions(role),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// ParseToken parses and validates a JWT token string.
func ParseToken(secret, tokenStr string) (*models.OperatorClaims, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.OperatorClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
