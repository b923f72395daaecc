package memory

import (
	"container/heap"
	"time"
)

type rollingLimit struct {
	cap  uint64
	used uint64
	heap expiryHeap
	byID map[string]*entry
}

func newRollingLimit(capacity uint64) *rollingLimit {
	return &rollingLimit{cap: capacity, byID: map[string]*entry{}}
}

func (l *rollingLimit) cleanup(now time.Time) {
	for _, e := range l.heap.popExpired(now) {
		delete(l.byID, e.id)
		l.release(e.amount)
	}
}

// fits reports whether amount can be reserved now. An amount above capacity
// is treated as a full window so oversized prompts still run alone.
func (l *rollingLimit) fits(amount uint64) bool {
	return l.used+l.clamp(amount) <= l.cap
}

func (l *rollingLimit) clamp(amount uint64) uint64 {
	if amount > l.cap {
		return l.cap
	}
	return amount
}

func (l *rollingLimit) add(leaseID string, amount uint64, expiresAt time.Time) {
	e := &entry{id: leaseID, amount: l.clamp(amount), expiresAt: expiresAt}
	l.byID[leaseID] = e
	l.used += e.amount
	heap.Push(&l.heap, e)
}

// reduce lowers a reservation to the actual amount used. Larger actuals
// leave the reservation untouched.
func (l *rollingLimit) reduce(leaseID string, actual uint64) {
	e, ok := l.byID[leaseID]
	if !ok || actual >= e.amount {
		return
	}
	l.release(e.amount - actual)
	e.amount = actual
}

func (l *rollingLimit) release(amount uint64) {
	if l.used >= amount {
		l.used -= amount
		return
	}
	l.used = 0
}
