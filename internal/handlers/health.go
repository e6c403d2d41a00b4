package handlers

import (
	"context"
	"time"

	"ledgerguard/internal/metrics"
	"ledgerguard/internal/services/history"

	"github.com/gofiber/fiber/v2"
)

// Checker probes an optional backing service.
type Checker func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]Checker
	audit   AuditReader
	stats   *metrics.CounterCollector
	history history.Log
	version string
}

// NewHealthHandler creates a HealthHandler. audit is optional.
func NewHealthHandler(version string, checks map[string]Checker, stats *metrics.CounterCollector, log history.Log, audit AuditReader) *HealthHandler {
	return &HealthHandler{checks: checks, audit: audit, stats: stats, history: log, version: version}
}

// HealthCheck reports "ok" when every configured dependency answers.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = err.Error()
			status = "degraded"
			continue
		}
		services[name] = "connected"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  h.version,
		"services": services,
	})
}

// Stats reports in-process counters and, with the audit mirror enabled,
// the recorded volume per transfer status.
func (h *HealthHandler) Stats(c *fiber.Ctx) error {
	body := fiber.Map{
		"metrics":          h.stats.Snapshot(),
		"transfer_records": h.history.Len(),
	}
	if h.audit != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if volume, err := h.audit.VolumeByStatus(ctx); err != nil {
			body["audit_error"] = err.Error()
		} else {
			body["audit_volume"] = volume
		}
	}
	return c.JSON(body)
}
