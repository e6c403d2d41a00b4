package validation

import (
	"ledgerguard/internal/models"
)

const maxFieldLength = 256

// NewAccount validates the structural shape of an account application.
// Content quality (phone format, address length, name characters) is left
// to the account risk evaluator, which scores rather than rejects it.
func (v *Validator) NewAccount(in models.NewAccount) {
	v.Required("full_name", in.FullName)
	v.MaxLength("full_name", in.FullName, maxFieldLength)
	v.Required("email", in.Email)
	v.Email("email", in.Email)
	v.MaxLength("address", in.Address, maxFieldLength)
	v.MaxLength("phone", in.Phone, maxFieldLength)
}

// Transfer validates a transfer request. Amount sign is judged by the
// transfer risk check so that invalid amounts are still recorded.
func (v *Validator) Transfer(fromEmail, toEmail string) {
	v.Required("from_email", fromEmail)
	v.Required("to_email", toEmail)
}

// FraudCheck validates a standalone pattern or spike request.
func (v *Validator) FraudCheck(userID string) {
	v.Required("user_id", userID)
	v.MaxLength("user_id", userID, maxFieldLength)
}

// Screen validates a signup screening request.
func (v *Validator) Screen(userID, email, ip string) {
	v.FraudCheck(userID)
	v.Required("email", email)
	v.IP("ip", ip)
}

// Login validates operator credentials.
func (v *Validator) Login(operatorID, key string) {
	v.Required("operator_id", operatorID)
	v.Required("key", key)
}
