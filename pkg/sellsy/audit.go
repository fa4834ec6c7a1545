package sellsy

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
)

// Publisher publishes a message on a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// AuditRecord is published once per call. It carries neither parameters nor
// credentials.
type AuditRecord struct {
	Method     string    `json:"method"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	At         time.Time `json:"at"`
}

// NewAuditObserver returns an observer publishing an AuditRecord for every
// exchange on subject. Publish failures are logged when logger is not nil and
// never affect the call.
func NewAuditObserver(publisher Publisher, subject string, logger Logger) (ResponseObserver, error) {
	if publisher == nil {
		return nil, ErrNoPublisher
	}

	if subject == "" {
		subject = constants.DefaultAuditSubject
	}

	return func(ctx context.Context, exchange *Exchange) {
		record := AuditRecord{
			Method:     exchange.Settings.Method,
			Outcome:    exchange.Outcome(),
			DurationMS: exchange.Duration.Milliseconds(),
			At:         time.Now().UTC(),
		}

		if exchange.Err != nil {
			record.Error = exchange.Err.Error()
		}

		data, err := json.Marshal(record)
		if err == nil {
			err = publisher.Publish(subject, data)
		}

		if err != nil && logger != nil {
			logger.Warn("failed to publish audit record", map[string]interface{}{
				"subject": subject,
				"error":   err.Error(),
			})
		}
	}, nil
}
