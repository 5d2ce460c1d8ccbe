package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"gotolaunch/logger"
)

// Message is one reminder delivery.
type Message struct {
	ToEmail  string
	ToName   string
	Body     string
	LaunchID string
}

// Sender delivers a message. Implementations must honor ctx cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// DefaultSecondaryTimeout bounds each secondary delivery.
const DefaultSecondaryTimeout = 30 * time.Second

// FanoutSender delivers through a primary sender and, once that succeeds,
// through every secondary in the background. The result is the primary's;
// secondary failures are logged.
type FanoutSender struct {
	primary     Sender
	secondaries []Sender
	timeout     time.Duration
	wg          sync.WaitGroup
}

func Fanout(primary Sender, secondaries ...Sender) *FanoutSender {
	return &FanoutSender{
		primary:     primary,
		secondaries: secondaries,
		timeout:     DefaultSecondaryTimeout,
	}
}

// WithSecondaryTimeout replaces the per-secondary deadline.
func (f *FanoutSender) WithSecondaryTimeout(d time.Duration) *FanoutSender {
	if d > 0 {
		f.timeout = d
	}
	return f
}

// Send returns once the primary has finished. Secondaries run detached from
// ctx so the caller's deadline never covers them.
func (f *FanoutSender) Send(ctx context.Context, msg Message) error {
	if f.primary == nil {
		return errors.New("no primary sender configured")
	}
	if err := f.primary.Send(ctx, msg); err != nil {
		return err
	}
	detached := context.WithoutCancel(ctx)
	for _, s := range f.secondaries {
		f.wg.Add(1)
		go f.sendSecondary(detached, s, msg)
	}
	return nil
}

// Wait blocks until every secondary delivery started so far has finished.
func (f *FanoutSender) Wait() {
	f.wg.Wait()
}

func (f *FanoutSender) sendSecondary(ctx context.Context, s Sender, msg Message) {
	defer f.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("secondary notification panicked", "to", msg.ToEmail, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := s.Send(ctx, msg); err != nil {
		logger.Warn("secondary notification failed", "to", msg.ToEmail, "err", err)
	}
}
