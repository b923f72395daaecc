package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// worker consumes jobs from the work channel and executes them.
func (s *Scheduler) worker() {
	defer s.wg.Done()
	for job := range s.workCh {
		// A slot just opened in workCh.
		s.notify()
		s.handleJob(job)
	}
}

// handleJob runs a single reserve/execute/complete attempt.
func (s *Scheduler) handleJob(job Job) {
	if s.ctx.Err() != nil {
		rejectJob(job, ErrSchedulerClosed)
		return
	}
	if job.LeaseID == "" {
		job.LeaseID = s.newLeaseID()
	}
	res, err := s.limiter.Reserve(s.ctx, buildReserveRequest(job))
	if err != nil {
		if s.observer != nil {
			s.observer.OnReserveError(job, err)
		}
		s.requeue(job, s.now().Add(s.errorRetryDelay))
		return
	}
	if !res.Allowed {
		if res.Error != "" && res.RetryAfterMs <= 0 {
			rejectJob(job, fmt.Errorf("%w: %s", ErrRejected, res.Error))
			return
		}
		if s.observer != nil {
			s.observer.OnReserveDenied(job, res)
		}
		job.LeaseID = s.newLeaseID()
		s.requeue(job, s.now().Add(s.retryDelay(res)))
		return
	}
	var actualTokens uint64
	if job.Execute != nil {
		actualTokens, _ = job.Execute(s.ctx)
	}
	s.complete(job, buildLLMActuals(job, actualTokens))
}

// retryDelay calculates retry timing for a denied reservation.
func (s *Scheduler) retryDelay(res ReserveResponse) time.Duration {
	delay := time.Duration(res.RetryAfterMs) * time.Millisecond
	if delay < 0 {
		delay = 0
	}
	jitter := s.jitter(delay)
	if jitter < 0 {
		jitter = 0
	}
	return delay + jitter
}

func buildReserveRequest(job Job) ReserveRequest {
	reqs := BuildLLMRequirements(LLMCall{
		Provider:        job.Provider,
		Model:           job.Model,
		Prompt:          job.Prompt,
		MaxOutputTokens: job.MaxOutputTokens,
	})
	return ReserveRequest{LeaseID: job.LeaseID, JobID: job.JobID, Requirements: reqs}
}

// buildLLMActuals reports token usage so unused reservation is returned.
func buildLLMActuals(job Job, actualTokens uint64) []Actual {
	return []Actual{
		{Key: TPMKey(job.Provider, job.Model), ActualAmount: actualTokens},
	}
}

// complete reports completion to the limiter, ignoring errors.
func (s *Scheduler) complete(job Job, actuals []Actual) {
	_, _ = s.limiter.Complete(context.Background(), CompleteRequest{
		LeaseID: job.LeaseID,
		JobID:   job.JobID,
		Actuals: actuals,
	})
}
