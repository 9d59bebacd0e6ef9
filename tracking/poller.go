package tracking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is how often a visible screen re-syncs usage.
const DefaultPollInterval = 45 * time.Second

// Poller runs Tracker.Refresh on a fixed interval while the relevant view
// is active. Start fires an immediate refresh (the foreground-entry sync
// trigger) and Stop cancels the loop; both are tied to the caller's
// visibility signal.
type Poller struct {
	tracker  *Tracker
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(t *Tracker, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		tracker:  t,
		interval: interval,
		log:      log.With().Str("component", "poller").Logger(),
	}
}

// Start begins polling. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels the loop and waits for it to exit. Safe to call when not
// running.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.refresh(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// refresh is idempotent: re-running with the same observed totals is a
// no-op thanks to the monotonic merge, so tick failures just wait for the
// next tick.
func (p *Poller) refresh(ctx context.Context) {
	if _, err := p.tracker.Refresh(ctx); err != nil {
		if errors.Is(err, ErrPermissionRequired) {
			p.log.Debug().Msg("skipping sync, usage permission not granted")
			return
		}
		p.log.Warn().Err(err).Msg("scheduled usage refresh failed")
	}
}
