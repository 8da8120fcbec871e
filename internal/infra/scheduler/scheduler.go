package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"
	"github.com/rs/zerolog"
)

// Job is the unit of work the scheduler runs on every cron tick.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler runs a Job whenever its cron expression is due.
type Scheduler struct {
	expr       string
	job        Job
	timeout    time.Duration
	runOnStart bool
	log        *zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithRunOnStart runs the job once as soon as the scheduler starts.
func WithRunOnStart() Option { return func(s *Scheduler) { s.runOnStart = true } }

// WithTimeout bounds a single run. The default is one minute.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewScheduler validates expr and constructs the scheduler.
func NewScheduler(expr string, job Job, logger *zerolog.Logger, opts ...Option) (*Scheduler, error) {
	if !gronx.IsValid(expr) {
		return nil, fmt.Errorf("invalid cron expression %q", expr)
	}
	l := logger.With().Str("component", "Scheduler").Str("cron", expr).Logger()
	s := &Scheduler{
		expr:    expr,
		job:     job,
		timeout: time.Minute,
		log:     &l,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NextRun returns the first tick strictly after now.
func (s *Scheduler) NextRun(now time.Time) (time.Time, error) {
	return gronx.NextTickAfter(s.expr, now, false)
}

// Start begins the scheduler loop in a background goroutine.
// Calling Start multiple times has no effect.
func (s *Scheduler) Start(parentCtx context.Context) {
	if s.ctx != nil {
		return
	}
	s.ctx, s.cancel = context.WithCancel(parentCtx)
	go s.loop()
}

func (s *Scheduler) loop() {
	defer close(s.done)

	s.log.Info().Msg("scheduler started")
	if s.runOnStart {
		s.runOnce()
	}
	for {
		next, err := s.NextRun(time.Now())
		if err != nil {
			s.log.Error().Err(err).Msg("next tick failed")
			next = time.Now().Add(30 * time.Second)
		}
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.ctx.Done():
			timer.Stop()
			s.log.Info().Msg("context cancelled; stopping")
			return
		case <-timer.C:
			s.runOnce()
		}
	}
}

// runOnce runs the job with a bounded timeout.
func (s *Scheduler) runOnce() {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	start := time.Now()
	if err := s.job.Run(runCtx); err != nil {
		s.log.Error().Err(err).Dur("duration", time.Since(start)).Msg("job failed")
		return
	}
	s.log.Debug().Dur("duration", time.Since(start)).Msg("job finished")
}

// Stop cancels the scheduler and waits for the loop to finish. It is idempotent.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.ctx = nil
	s.cancel = nil
	s.done = make(chan struct{})
	s.log.Info().Msg("scheduler stopped")
}
