package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/housefest/board-service/internal/domain/board"
	"github.com/housefest/board-service/internal/logging"
	"github.com/housefest/board-service/internal/metrics"
	"github.com/housefest/board-service/internal/providers"
	"github.com/housefest/board-service/internal/store"
	"github.com/housefest/board-service/internal/timeutil"
)

const (
	defaultInterval     = 30 * time.Second
	defaultCycleTimeout = 20 * time.Second
	readyFailureLimit   = 3
)

// State is the scheduler's position in its refresh lifecycle.
type State string

const (
	StateIdle     State = "idle"
	StateFetching State = "fetching"
	StateReady    State = "ready"
	StateError    State = "error"
)

// SnapshotFetcher produces one snapshot per call.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, hint time.Time) (board.Snapshot, error)
}

// SnapshotStore accepts snapshots that completed successfully.
type SnapshotStore interface {
	Replace(snap board.Snapshot, acceptedAt time.Time, label string) store.Meta
}

// Notifier is told about every accepted snapshot. Notify runs on the poller goroutine
// and must return promptly.
type Notifier interface {
	Notify(ctx context.Context, snap board.Snapshot, label string) error
}

// Options tunes the refresh loop. Zero values fall back to defaults.
type Options struct {
	Interval     time.Duration
	CycleTimeout time.Duration
	Location     *time.Location
}

// Poller refreshes the board snapshot on an interval, one cycle at a time.
type Poller struct {
	fetcher      SnapshotFetcher
	store        SnapshotStore
	logger       *slog.Logger
	metrics      *metrics.Recorder
	interval     time.Duration
	cycleTimeout time.Duration
	location     *time.Location
	now          func() time.Time

	// cycleMu serialises cycles between the loop and RunOnce.
	cycleMu sync.Mutex
	trigger chan struct{}

	notifyMu  sync.RWMutex
	notifiers []Notifier

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	cancel   context.CancelFunc
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	State               State     `json:"state"`
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureLimit
}

// New constructs a Poller with sane defaults.
func New(fetcher SnapshotFetcher, st SnapshotStore, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.CycleTimeout <= 0 {
		opts.CycleTimeout = defaultCycleTimeout
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Poller{
		fetcher:      fetcher,
		store:        st,
		logger:       logger,
		metrics:      recorder,
		interval:     opts.Interval,
		cycleTimeout: opts.CycleTimeout,
		location:     opts.Location,
		now:          time.Now,
		trigger:      make(chan struct{}, 1),
		done:         make(chan struct{}),
		exited:       make(chan struct{}),
		status:       Status{State: StateIdle},
	}
}

// AddNotifier registers n for accepted snapshots. Register before Start.
func (p *Poller) AddNotifier(n Notifier) {
	if n == nil {
		return
	}
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	p.notifiers = append(p.notifiers, n)
}

// Start runs an initial cycle and then polls until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		defer close(p.exited)
		defer cancel()
		defer p.stopTicker()

		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.runCycle(loopCtx)

		for {
			select {
			case <-loopCtx.Done():
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
			case <-p.trigger:
			}
			if loopCtx.Err() != nil {
				continue
			}
			p.runCycle(loopCtx)
			p.drainTicks()
		}
	}()
}

// Stop halts the polling loop, cancels an in-flight cycle and waits for the loop to exit
// or ctx to end. Safe to call more than once.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.startMu.Lock()
		if p.cancel != nil {
			p.cancel()
		}
		p.startMu.Unlock()
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger requests an immediate cycle. Requests made while one is already pending are
// coalesced; the return value reports whether this call queued a new one.
func (p *Poller) Trigger() bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// RunOnce runs a single cycle synchronously. It never overlaps a cycle of the loop.
func (p *Poller) RunOnce(ctx context.Context) error {
	return p.runCycle(ctx)
}

func (p *Poller) runCycle(ctx context.Context) error {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	start := p.now()
	p.recordAttempt(start)

	cycleCtx, cancel := context.WithTimeout(ctx, p.cycleTimeout)
	defer cancel()

	var (
		snap board.Snapshot
		err  error
	)
	if p.fetcher == nil {
		err = providers.ErrProviderUnavailable
	} else {
		snap, err = p.fetcher.FetchSnapshot(cycleCtx, start)
	}
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)

	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err,
			slog.String(logging.FieldErrorKind, errorKind(err)),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		p.recordFailure(err)
		return err
	}

	acceptedAt := p.now()
	label := timeutil.FormatClock(acceptedAt, p.location)
	if p.store != nil {
		p.store.Replace(snap, acceptedAt, label)
	}
	p.recordSuccess(acceptedAt)
	counts := metrics.CountSnapshot(snap)
	p.metrics.RecordSnapshotAccepted(counts)

	logging.Info(p.logger, "poller refreshed board",
		slog.String(logging.FieldUpdatedAt, label),
		slog.Int(logging.FieldCount, counts.MatchRows),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)

	p.notify(ctx, snap, label)
	return nil
}

func (p *Poller) notify(ctx context.Context, snap board.Snapshot, label string) {
	p.notifyMu.RLock()
	notifiers := append([]Notifier(nil), p.notifiers...)
	p.notifyMu.RUnlock()

	for _, n := range notifiers {
		if err := n.Notify(ctx, snap, label); err != nil {
			logging.Warn(p.logger, "snapshot notification failed", "error", err)
		}
	}
}

// drainTicks drops a tick that fired while a cycle was running.
func (p *Poller) drainTicks() {
	select {
	case <-p.ticker.C:
	default:
	}
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func errorKind(err error) string {
	switch {
	case providers.IsConfigError(err):
		return "config_error"
	case crerr.Is(err, context.DeadlineExceeded):
		return "timeout"
	case crerr.Is(err, context.Canceled):
		return "canceled"
	default:
		return "source_error"
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.State = StateFetching
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.State = StateReady
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.State = StateError
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
