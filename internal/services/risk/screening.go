package risk

import "strings"

// ScreenResult is the outcome of a signup screen.
type ScreenResult struct {
	UserID          string `json:"user_id"`
	Flagged         bool   `json:"flagged"`
	DisposableEmail bool   `json:"disposable_email"`
	BlockedIP       bool   `json:"blocked_ip"`
}

// ScreenSignup flags signups from disposable mail providers or blocked
// address ranges. It is advisory and independent of account scoring.
func ScreenSignup(cfg Config, userID, email, ip string) ScreenResult {
	cfg = cfg.WithDefaults()
	r := ScreenResult{UserID: userID}

	email = strings.ToLower(email)
	for _, d := range cfg.DisposableDomains {
		if d != "" && strings.Contains(email, strings.ToLower(d)) {
			r.DisposableEmail = true
			break
		}
	}
	ip = strings.TrimSpace(ip)
	for _, p := range cfg.BlockedIPPrefixes {
		if p != "" && strings.HasPrefix(ip, p) {
			r.BlockedIP = true
			break
		}
	}
	r.Flagged = r.DisposableEmail || r.BlockedIP
	return r
}
