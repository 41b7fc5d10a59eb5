package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"moments/internal/models/response_models"
	"moments/pkg/logger"
	"moments/pkg/metrics"
	"moments/pkg/utils"
)

// Notifier delivers one activity announcement over a single channel.
// The returned detail is a short human-readable outcome (e.g. message ids).
type Notifier interface {
	Channel() string
	Notify(ctx context.Context, activity response_models.ActivityResponse) (string, error)
}

type DispatchResult struct {
	ActivityID uint
	Channel    string
	Result     string
	Detail     string
	Err        error
	Duration   time.Duration
}

// ResultSink observes every delivery outcome.
type ResultSink func(DispatchResult)

type DispatcherConfig struct {
	QueueSize int
	Timeout   time.Duration
}

// Dispatcher announces new activities in the background. Jobs queue on a
// buffered channel drained by one worker; a full queue drops the job.
type Dispatcher struct {
	notifiers []Notifier
	queue     chan response_models.ActivityResponse
	timeout   time.Duration
	log       *logger.Logger
	sink      ResultSink

	mu      sync.Mutex
	closed  bool
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewDispatcher(cfg DispatcherConfig, log *logger.Logger, notifiers ...Notifier) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 32
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Dispatcher{
		notifiers: notifiers,
		queue:     make(chan response_models.ActivityResponse, cfg.QueueSize),
		timeout:   cfg.Timeout,
		log:       log.With("service", "Dispatcher"),
		done:      make(chan struct{}),
	}
}

// WithSink registers a callback invoked after every channel delivery.
func (d *Dispatcher) WithSink(sink ResultSink) *Dispatcher {
	d.sink = sink
	return d
}

// Start launches the worker. The worker owns its context; Stop cancels it.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	go d.run(ctx)
}

// Stop refuses new jobs and waits for queued ones to finish. If ctx ends
// first, in-flight deliveries are cancelled and ctx.Err() is returned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

// Enqueue hands an activity to the worker without blocking. It reports
// false when the job was dropped.
func (d *Dispatcher) Enqueue(activity response_models.ActivityResponse) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.drop(activity, "dispatcher stopped")
		return false
	}

	select {
	case d.queue <- activity:
		return true
	default:
		d.drop(activity, "queue full")
		return false
	}
}

func (d *Dispatcher) drop(activity response_models.ActivityResponse, reason string) {
	metrics.RecordNotification("queue", metrics.ResultDropped)
	d.log.Warn("notification dropped", "activity_id", activity.ID, "reason", reason)
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	for activity := range d.queue {
		d.Dispatch(ctx, activity)
	}
}

// Dispatch delivers one activity over every channel concurrently and
// returns the per-channel outcomes in notifier order.
func (d *Dispatcher) Dispatch(ctx context.Context, activity response_models.ActivityResponse) []DispatchResult {
	results := make([]DispatchResult, len(d.notifiers))

	var g errgroup.Group
	for i, n := range d.notifiers {
		g.Go(func() error {
			results[i] = d.deliver(ctx, n, activity)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		d.report(r)
	}
	return results
}

func (d *Dispatcher) deliver(ctx context.Context, n Notifier, activity response_models.ActivityResponse) DispatchResult {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	started := time.Now()
	detail, err := n.Notify(ctx, activity)

	return DispatchResult{
		ActivityID: activity.ID,
		Channel:    n.Channel(),
		Result:     classifyDelivery(err),
		Detail:     detail,
		Err:        err,
		Duration:   time.Since(started),
	}
}

func classifyDelivery(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, utils.ErrChannelDisabled):
		return metrics.ResultDisabled
	default:
		return metrics.ResultFailure
	}
}

func (d *Dispatcher) report(r DispatchResult) {
	metrics.RecordNotification(r.Channel, r.Result)

	fields := []interface{}{
		"activity_id", r.ActivityID,
		"channel", r.Channel,
		"result", r.Result,
		"duration", r.Duration,
	}
	switch r.Result {
	case metrics.ResultSuccess:
		d.log.Info("notification delivered", append(fields, "detail", r.Detail)...)
	case metrics.ResultDisabled:
		d.log.Debug("notification channel disabled", fields...)
	default:
		d.log.Error("notification failed", append(fields, "error", r.Err)...)
	}

	if d.sink != nil {
		d.sink(r)
	}
}
