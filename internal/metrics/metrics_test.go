package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGauges(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RoomOpened()
	m.RoomOpened()
	m.RoomClosed()
	m.Connected()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.rooms))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.connections))

	m.Disconnected()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.connections))
}

func TestCounters(t *testing.T) {
	m := New(nil)

	m.MessageReceived("CHAT")
	m.MessageReceived("CHAT")
	m.MessageReceived("SYNC")
	m.MessageDropped(DropReasonQueueFull)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.received.WithLabelValues("CHAT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.received.WithLabelValues("SYNC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dropped.WithLabelValues(DropReasonQueueFull)))
}

func TestHandler(t *testing.T) {
	m := New(nil)
	m.RoomOpened()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "relay_rooms 1")
}
