package tracking

import (
	"context"
	"testing"
	"time"

	"SlowDown/usagestats"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPollerStartRefreshesImmediately(t *testing.T) {
	source := &stubSource{granted: true, reading: usagestats.Reading{TotalMinutes: 5}}
	backend := new(MockBackend)
	synced := make(chan struct{}, 1)
	backend.On("SyncUsage", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case synced <- struct{}{}:
			default:
			}
		}).Return(nil)

	tracker := newTestTracker(source, backend)
	poller := NewPoller(tracker, time.Hour, zerolog.Nop())

	poller.Start(context.Background())
	defer poller.Stop()

	select {
	case <-synced:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate sync on start")
	}
	assert.True(t, poller.Running())
}

func TestPollerStopIsIdempotent(t *testing.T) {
	tracker := newTestTracker(&stubSource{granted: false}, new(MockBackend))
	poller := NewPoller(tracker, time.Hour, zerolog.Nop())

	poller.Start(context.Background())
	assert.True(t, poller.Running())

	poller.Stop()
	assert.False(t, poller.Running())
	poller.Stop()

	// Start again after a stop.
	poller.Start(context.Background())
	assert.True(t, poller.Running())
	poller.Stop()
}

func TestPollerStartTwiceIsNoOp(t *testing.T) {
	tracker := newTestTracker(&stubSource{granted: false}, new(MockBackend))
	poller := NewPoller(tracker, time.Hour, zerolog.Nop())

	poller.Start(context.Background())
	poller.Start(context.Background())
	assert.True(t, poller.Running())
	poller.Stop()
	assert.False(t, poller.Running())
}
