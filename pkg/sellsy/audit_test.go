package sellsy_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

var errTestPublish = errors.New("nats: connection closed")

type published struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}

	p.messages = append(p.messages, published{subject: subject, data: data})

	return nil
}

func TestNewAuditObserver(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}

	observer, err := sellsy.NewAuditObserver(publisher, "", nil)
	require.NoError(t, err)

	observer(context.Background(), &sellsy.Exchange{
		Settings: sellsy.RequestSettings{
			Method: "Client.getOne",
			Params: map[string]string{"secret_param": "do-not-publish"},
		},
		Err:      &sellsy.ServiceError{Message: "Unknown client"},
		Duration: 1500 * time.Millisecond,
	})

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "sellsy.calls", publisher.messages[0].subject)
	assert.NotContains(t, string(publisher.messages[0].data), "do-not-publish")

	var record sellsy.AuditRecord

	require.NoError(t, json.Unmarshal(publisher.messages[0].data, &record))
	assert.Equal(t, "Client.getOne", record.Method)
	assert.Equal(t, "service_error", record.Outcome)
	assert.Equal(t, "Unknown client", record.Error)
	assert.Equal(t, int64(1500), record.DurationMS)
	assert.False(t, record.At.IsZero())
}

func TestNewAuditObserver_CustomSubject(t *testing.T) {
	t.Parallel()

	publisher := &fakePublisher{}

	observer, err := sellsy.NewAuditObserver(publisher, "audit.sellsy", nil)
	require.NoError(t, err)

	observer(context.Background(), &sellsy.Exchange{Settings: sellsy.RequestSettings{Method: "Infos.getInfos"}})

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "audit.sellsy", publisher.messages[0].subject)
	assert.NotContains(t, string(publisher.messages[0].data), `"error"`)
}

func TestNewAuditObserver_PublishFailure(t *testing.T) {
	t.Parallel()

	logger := &mockLogger{}

	observer, err := sellsy.NewAuditObserver(&fakePublisher{err: errTestPublish}, "", logger)
	require.NoError(t, err)

	observer(context.Background(), &sellsy.Exchange{Settings: sellsy.RequestSettings{Method: "Infos.getInfos"}})

	require.Len(t, logger.entries, 1)
	assert.Equal(t, "warn", logger.entries[0].level)
	assert.Equal(t, errTestPublish.Error(), logger.entries[0].fields["error"])
}

func TestNewAuditObserver_RequiresPublisher(t *testing.T) {
	t.Parallel()

	_, err := sellsy.NewAuditObserver(nil, "", nil)
	require.ErrorIs(t, err, sellsy.ErrNoPublisher)
}
