package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"gotolaunch/logger"
	"gotolaunch/services"
)

// DefaultCadence runs a reminder sweep every five minutes.
const DefaultCadence = "*/5 * * * *"

// Dispatcher runs one reminder sweep.
type Dispatcher interface {
	DispatchPending(ctx context.Context) services.DispatchStats
}

type Options struct {
	// Cadence is a standard five-field cron expression. Empty means DefaultCadence.
	Cadence string
	// Logger receives cron's own messages. Nil means the global logger.
	Logger *log.Logger
	// Now stamps LastRun. Nil means time.Now.
	Now func() time.Time
}

// Status is a snapshot of the driver.
type Status struct {
	Active     bool                    `json:"active"`
	Cadence    string                  `json:"cadence"`
	Running    bool                    `json:"running"`
	LastRun    *time.Time              `json:"lastRun"`
	LastResult *services.DispatchStats `json:"lastResult"`
}

// Driver triggers reminder sweeps on a cron cadence. Timer sweeps never
// overlap and a panicking sweep does not stop later ticks.
type Driver struct {
	dispatcher Dispatcher
	cadence    string
	cron       *cron.Cron

	mu         sync.Mutex
	active     bool
	lastRun    *time.Time
	lastResult *services.DispatchStats

	running atomic.Int32
	now     func() time.Time
}

func New(dispatcher Dispatcher, opts Options) (*Driver, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("scheduler: dispatcher is required")
	}
	cadence := opts.Cadence
	if cadence == "" {
		cadence = DefaultCadence
	}
	if _, err := cron.ParseStandard(cadence); err != nil {
		return nil, fmt.Errorf("scheduler: invalid cadence %q: %w", cadence, err)
	}

	l := opts.Logger
	if l == nil {
		l = logger.Logger
	}
	cl := cronLogger{l: l}

	d := &Driver{
		dispatcher: dispatcher,
		cadence:    cadence,
		now:        opts.Now,
	}
	if d.now == nil {
		d.now = time.Now
	}
	d.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		// Recover must sit inside the skip guard: SkipIfStillRunning only
		// hands its token back when the wrapped job returns normally.
		cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
	)
	if _, err := d.cron.AddJob(cadence, cron.FuncJob(d.tick)); err != nil {
		return nil, fmt.Errorf("scheduler: add job: %w", err)
	}
	return d, nil
}

// Start begins ticking. Calling Start on an active driver is a no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		logger.Debug("reminder scheduler already started")
		return
	}
	d.cron.Start()
	d.active = true
	logger.Info("reminder scheduler started", "cadence", d.cadence)
}

// Stop halts future ticks without waiting for a sweep in flight. Calling Stop
// on an inactive driver is a no-op.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return
	}
	d.cron.Stop()
	d.active = false
	logger.Info("reminder scheduler stopped")
}

// RunNow runs a sweep immediately, outside the cron cadence. It may overlap a
// timer sweep.
func (d *Driver) RunNow(ctx context.Context) services.DispatchStats {
	return d.run(ctx)
}

func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := Status{
		Active:  d.active,
		Cadence: d.cadence,
		Running: d.running.Load() > 0,
	}
	if d.lastRun != nil {
		t := *d.lastRun
		s.LastRun = &t
	}
	if d.lastResult != nil {
		r := *d.lastResult
		s.LastResult = &r
	}
	return s
}

// Entries reports how many jobs are registered with the underlying cron.
func (d *Driver) Entries() int {
	return len(d.cron.Entries())
}

func (d *Driver) tick() {
	d.run(context.Background())
}

func (d *Driver) run(ctx context.Context) services.DispatchStats {
	d.running.Add(1)
	defer d.running.Add(-1)

	started := d.now().UTC()
	stats := d.dispatcher.DispatchPending(ctx)

	d.mu.Lock()
	d.lastRun = &started
	d.lastResult = &stats
	d.mu.Unlock()
	return stats
}

// cronLogger routes cron's logr-style calls to a charm logger.
type cronLogger struct {
	l *log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
