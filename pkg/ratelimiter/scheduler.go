package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// Job represents a single LLM call attempt managed by the Scheduler.
type Job struct {
	JobID   string
	LeaseID string

	Provider, Model string
	Prompt          string
	MaxOutputTokens uint64

	Execute func(ctx context.Context) (actualTokens uint64, err error)

	// Reject runs instead of Execute when the job will never be admitted.
	Reject func(err error)
}

// Scheduler coordinates Reserve/Complete attempts across per-provider queues.
// Jobs for a provider/model pair that is being throttled wait in their own
// queue without holding up other pairs.
type Scheduler struct {
	limiter  Limiter
	workers  int
	observer SchedulerObserver

	mu     sync.Mutex
	state  *schedulerState
	closed bool

	wake     chan struct{}
	workCh   chan Job
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	now             func() time.Time
	newLeaseID      func() string
	jitter          func(time.Duration) time.Duration
	errorRetryDelay time.Duration
	idleInterval    time.Duration
}

// NewScheduler creates a Scheduler with the default configuration.
func NewScheduler(limiter Limiter, workers int) *Scheduler {
	return newScheduler(limiter, workers, defaultSchedulerConfig())
}

// NewSchedulerWithObserver creates a Scheduler with an observer.
func NewSchedulerWithObserver(limiter Limiter, workers int, observer SchedulerObserver) *Scheduler {
	cfg := defaultSchedulerConfig()
	cfg.observer = observer
	return newScheduler(limiter, workers, cfg)
}

// Submit enqueues a job for scheduling. After Shutdown the job is rejected
// with ErrSchedulerClosed.
func (s *Scheduler) Submit(job Job) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		rejectJob(job, ErrSchedulerClosed)
		return
	}
	s.state.enqueueReady(job)
	s.mu.Unlock()
	s.notify()
}

// Do submits job and waits until it has run or been rejected. Execute sees
// ctx; if ctx ends first Do returns its error and the queued job is dropped
// when it reaches a worker.
func (s *Scheduler) Do(ctx context.Context, job Job) error {
	done := make(chan error, 1)
	execute := job.Execute
	job.Execute = func(context.Context) (uint64, error) {
		if err := ctx.Err(); err != nil {
			done <- err
			return 0, err
		}
		var (
			tokens uint64
			err    error
		)
		if execute != nil {
			tokens, err = execute(ctx)
		}
		done <- err
		return tokens, err
	}
	job.Reject = func(err error) { done <- err }
	s.Submit(job)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops the scheduler and waits for workers to finish. Jobs that
// are still queued are rejected with ErrSchedulerClosed.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.cancel()
	})
	wait := make(chan struct{})
	go func() {
		<-s.doneCh
		s.wg.Wait()
		close(wait)
	}()
	select {
	case <-wait:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func rejectJob(job Job, err error) {
	if job.Reject != nil {
		job.Reject(err)
	}
}

// newScheduler builds a Scheduler with custom configuration, primarily for tests.
func newScheduler(limiter Limiter, workers int, cfg schedulerConfig) *Scheduler {
	if workers <= 0 {
		workers = 1
	}
	if limiter == nil {
		limiter = NoopLimiter
	}
	defaults := defaultSchedulerConfig()
	if cfg.now == nil {
		cfg.now = defaults.now
	}
	if cfg.newLeaseID == nil {
		cfg.newLeaseID = defaults.newLeaseID
	}
	if cfg.jitter == nil {
		cfg.jitter = func(time.Duration) time.Duration { return 0 }
	}
	if cfg.errorRetryDelay <= 0 {
		cfg.errorRetryDelay = defaultErrorRetryDelay
	}
	if cfg.idleInterval <= 0 {
		cfg.idleInterval = defaultIdleInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		limiter:         limiter,
		workers:         workers,
		observer:        cfg.observer,
		state:           newSchedulerState(),
		wake:            make(chan struct{}, 1),
		workCh:          make(chan Job, workers),
		stopCh:          make(chan struct{}),
		doneCh:          make(chan struct{}),
		ctx:             ctx,
		cancel:          cancel,
		now:             cfg.now,
		newLeaseID:      cfg.newLeaseID,
		jitter:          cfg.jitter,
		errorRetryDelay: cfg.errorRetryDelay,
		idleInterval:    cfg.idleInterval,
	}
	go s.run()
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}
