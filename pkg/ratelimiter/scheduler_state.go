package ratelimiter

import (
	"sort"
	"time"
)

// schedulerState holds per provider/model queues. Callers hold Scheduler.mu.
type schedulerState struct {
	queues  map[string]*workQueue
	order   []string
	rrIndex int
}

// workQueue holds ready and blocked jobs for a provider/model pair.
type workQueue struct {
	ready   []Job
	blocked []blockedJob
}

// blockedJob is a job that may not be reserved again before notBefore.
type blockedJob struct {
	job       Job
	notBefore time.Time
}

func newSchedulerState() *schedulerState {
	return &schedulerState{queues: map[string]*workQueue{}}
}

func (s *schedulerState) enqueueReady(job Job) {
	q := s.queue(queueKey(job))
	q.ready = append(q.ready, job)
}

// enqueueBlocked inserts job keeping the blocked list sorted by notBefore.
// Jobs with equal times keep submission order.
func (s *schedulerState) enqueueBlocked(job Job, notBefore time.Time) {
	q := s.queue(queueKey(job))
	idx := sort.Search(len(q.blocked), func(i int) bool {
		return q.blocked[i].notBefore.After(notBefore)
	})
	q.blocked = append(q.blocked, blockedJob{})
	copy(q.blocked[idx+1:], q.blocked[idx:])
	q.blocked[idx] = blockedJob{job: job, notBefore: notBefore}
}

// promoteReady moves blocked jobs whose time has come onto their ready lists.
func (s *schedulerState) promoteReady(now time.Time) {
	for _, q := range s.queues {
		n := 0
		for n < len(q.blocked) && !q.blocked[n].notBefore.After(now) {
			q.ready = append(q.ready, q.blocked[n].job)
			n++
		}
		q.blocked = q.blocked[n:]
	}
}

// takeReady removes up to limit ready jobs, one queue at a time in
// round-robin order so a throttled pair cannot starve the others.
func (s *schedulerState) takeReady(limit int) []Job {
	var out []Job
	for len(out) < limit {
		job, ok := s.nextReady()
		if !ok {
			break
		}
		out = append(out, job)
	}
	return out
}

func (s *schedulerState) nextReady() (Job, bool) {
	for i := 0; i < len(s.order); i++ {
		idx := (s.rrIndex + i) % len(s.order)
		q := s.queues[s.order[idx]]
		if len(q.ready) == 0 {
			continue
		}
		job := q.ready[0]
		q.ready = q.ready[1:]
		s.rrIndex = (idx + 1) % len(s.order)
		return job, true
	}
	return Job{}, false
}

func (s *schedulerState) nextBlockedTime() (time.Time, bool) {
	var earliest time.Time
	ok := false
	for _, q := range s.queues {
		if len(q.blocked) == 0 {
			continue
		}
		if next := q.blocked[0].notBefore; !ok || next.Before(earliest) {
			earliest = next
			ok = true
		}
	}
	return earliest, ok
}

// drain empties every queue and returns the jobs it held.
func (s *schedulerState) drain() []Job {
	var out []Job
	for _, key := range s.order {
		q := s.queues[key]
		out = append(out, q.ready...)
		for _, item := range q.blocked {
			out = append(out, item.job)
		}
	}
	s.queues = map[string]*workQueue{}
	s.order = nil
	s.rrIndex = 0
	return out
}

func (s *schedulerState) queue(key string) *workQueue {
	if q, ok := s.queues[key]; ok {
		return q
	}
	q := &workQueue{}
	s.queues[key] = q
	s.order = append(s.order, key)
	return q
}

func queueKey(job Job) string {
	return job.Provider + ":" + job.Model
}
