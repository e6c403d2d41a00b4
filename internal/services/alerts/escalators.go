package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ledgerguard/internal/logging"

	"github.com/nats-io/nats.go"
)

// LogEscalator writes alerts to a structured logger.
type LogEscalator struct {
	logger *slog.Logger
}

func NewLogEscalator(logger *slog.Logger) *LogEscalator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LogEscalator{logger: logger}
}

func (e *LogEscalator) Escalate(_ context.Context, a Alert) error {
	e.logger.Warn("fraud escalation",
		"alert_id", a.ID,
		"kind", a.Kind,
		"user_id", a.UserID,
		"amount", a.Amount.String(),
		"reason", a.Reason,
		"message", a.Message,
	)
	return nil
}

// Publisher is the subset of *nats.Conn used for publishing.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSEscalator publishes alerts as JSON on a subject.
type NATSEscalator struct {
	pub     Publisher
	subject string
}

// NewNATSEscalator creates a publisher on subject.
func NewNATSEscalator(pub Publisher, subject string) *NATSEscalator {
	if pub == nil {
		panic("nats publisher is required")
	}
	if subject == "" {
		subject = "fraud.alerts"
	}
	return &NATSEscalator{pub: pub, subject: subject}
}

func (e *NATSEscalator) Escalate(_ context.Context, a Alert) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	if err := e.pub.Publish(e.subject+"."+string(a.Kind), data); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}

// Connect dials the NATS server at url.
func Connect(url string) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := nats.Connect(url, nats.Name("ledgerguard"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

// MultiEscalator fans an alert out to every escalator and joins the errors.
type MultiEscalator []Escalator

func (m MultiEscalator) Escalate(ctx context.Context, a Alert) error {
	var errs []error
	for _, e := range m {
		if err := e.Escalate(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps alerts in memory.
type Recorder struct {
	mu     sync.Mutex
	alerts []Alert
}

func (r *Recorder) Escalate(_ context.Context, a Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

// Alerts returns a copy of everything recorded so far.
func (r *Recorder) Alerts() []Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Alert(nil), r.alerts...)
}
