package ratelimiter

import "time"

// run drives the scheduler loop until shutdown.
func (s *Scheduler) run() {
	timer := time.NewTimer(s.idleInterval)
	defer timer.Stop()

	for {
		s.mu.Lock()
		s.state.promoteReady(s.now())
		ready := s.state.takeReady(cap(s.workCh) - len(s.workCh))
		delay := s.nextWakeDelay()
		s.mu.Unlock()

		// Only this goroutine sends on workCh, so the free slots counted
		// above are still free.
		for _, job := range ready {
			s.workCh <- job
		}
		resetTimer(timer, delay)

		select {
		case <-s.stopCh:
			s.mu.Lock()
			s.closed = true
			pending := s.state.drain()
			s.mu.Unlock()
			close(s.workCh)
			for _, job := range pending {
				rejectJob(job, ErrSchedulerClosed)
			}
			close(s.doneCh)
			return
		case <-s.wake:
		case <-timer.C:
		}
	}
}

// requeue schedules a job to be retried later.
func (s *Scheduler) requeue(job Job, notBefore time.Time) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		rejectJob(job, ErrSchedulerClosed)
		return
	}
	s.state.enqueueBlocked(job, notBefore)
	s.mu.Unlock()
	s.notify()
}

// nextWakeDelay computes the delay until the next blocked job is ready,
// capped at the idle interval. Callers hold s.mu.
func (s *Scheduler) nextWakeDelay() time.Duration {
	next, ok := s.state.nextBlockedTime()
	if !ok {
		return s.idleInterval
	}
	delay := next.Sub(s.now())
	if delay < 0 {
		return 0
	}
	if delay > s.idleInterval {
		return s.idleInterval
	}
	return delay
}

func resetTimer(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}
