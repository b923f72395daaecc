package memory

import (
	"container/heap"
	"time"
)

type concLimit struct {
	cap   uint64
	heap  expiryHeap
	holds map[string]*entry
}

func newConcLimit(capacity uint64) *concLimit {
	return &concLimit{cap: capacity, holds: map[string]*entry{}}
}

// cleanup drops holds whose timeout passed without a completion.
func (l *concLimit) cleanup(now time.Time) {
	for _, e := range l.heap.popExpired(now) {
		delete(l.holds, e.id)
	}
}

func (l *concLimit) fits() bool {
	return uint64(len(l.holds)) < l.cap
}

func (l *concLimit) add(leaseID string, expiresAt time.Time) {
	e := &entry{id: leaseID, amount: 1, expiresAt: expiresAt}
	l.holds[leaseID] = e
	heap.Push(&l.heap, e)
}

func (l *concLimit) release(leaseID string) {
	e, ok := l.holds[leaseID]
	if !ok {
		return
	}
	delete(l.holds, leaseID)
	if e.heapIndex >= 0 {
		heap.Remove(&l.heap, e.heapIndex)
	}
}
