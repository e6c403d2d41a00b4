package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the terminal outcome stored on a TransferRecord.
type TransferStatus string

// Transfer statuses
const (
	TransferStatusCompleted         TransferStatus = "Completed"
	TransferStatusBlockedFraud      TransferStatus = "Blocked (Fraud)"
	TransferStatusInsufficientFunds TransferStatus = "Failed (Insufficient Funds)"
	TransferStatusAccountNotFound   TransferStatus = "Failed (Account Not Found)"
)

// TransferRecord is an immutable entry in the transfer history log. The
// names are snapshots taken when the transfer was attempted.
type TransferRecord struct {
	ID        string          `gorm:"primarykey;type:uuid" json:"id"`
	Timestamp time.Time       `gorm:"index;not null" json:"timestamp"`
	FromEmail string          `gorm:"index;not null" json:"from_email"`
	FromName  string          `json:"from_name"`
	ToEmail   string          `gorm:"index;not null" json:"to_email"`
	ToName    string          `json:"to_name"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Status    TransferStatus  `gorm:"not null" json:"status"`
}

// TableName keeps the audit table name stable regardless of gorm pluralization.
func (TransferRecord) TableName() string {
	return "transfer_records"
}
