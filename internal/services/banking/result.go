package banking

import (
	"ledgerguard/internal/models"
	"ledgerguard/internal/services/alerts"
	"ledgerguard/internal/services/risk"
	"ledgerguard/internal/services/transfer"
)

// Result is what every banking operation reports back. Message is always
// set; the other fields carry structured detail when the operation has any.
type Result struct {
	Success    bool                    `json:"success"`
	Code       string                  `json:"code,omitempty"`
	Message    string                  `json:"message"`
	Account    *models.Account         `json:"account,omitempty"`
	Accounts   []models.Account        `json:"accounts,omitempty"`
	Assessment *risk.Assessment        `json:"assessment,omitempty"`
	Transfer   *transfer.Outcome       `json:"transfer,omitempty"`
	Verdict    *risk.Verdict           `json:"verdict,omitempty"`
	Screen     *risk.ScreenResult      `json:"screen,omitempty"`
	Records    []models.TransferRecord `json:"records,omitempty"`
	Alert      *alerts.Alert           `json:"alert,omitempty"`
}

func ok(msg string) Result {
	return Result{Success: true, Message: msg}
}

func fail(code, msg string) Result {
	return Result{Code: code, Message: msg}
}
