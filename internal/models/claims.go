package models

import "github.com/golang-jwt/jwt/v5"

// OperatorClaims identifies the caller driving the ledger: a human operator
// or the agent runtime acting on a customer's behalf.
type OperatorClaims struct {
	jwt.RegisteredClaims
	OperatorID  string   `json:"operator_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *OperatorClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
