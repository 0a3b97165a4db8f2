package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_JSONShape(t *testing.T) {
	ev := NewEvent(ContactSubmitted, 42, map[string]string{"email": "budi@example.com"})
	assert.WithinDuration(t, time.Now(), ev.OccurredAt, time.Minute)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "contact.submitted", got["type"])
	assert.EqualValues(t, 42, got["entityId"])
	assert.Contains(t, got, "occurredAt")
	assert.Equal(t, "budi@example.com", got["payload"].(map[string]any)["email"])
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), NewEvent(ApplicationReceived, 1, nil)))
	assert.NoError(t, p.Close())
}

func TestNewRabbitMQ_BadURL(t *testing.T) {
	_, err := NewRabbitMQ("http://not-amqp", "q")
	assert.Error(t, err)
}
