package memory

import (
	"container/heap"
	"time"
)

// entry is one reservation or hold that lapses at expiresAt.
type entry struct {
	id        string
	amount    uint64
	expiresAt time.Time
	heapIndex int
}

// expiryHeap orders entries by expiry, earliest first.
type expiryHeap []*entry

func (h expiryHeap) Len() int { return len(h) }

func (h expiryHeap) Less(i, j int) bool {
	return h[i].expiresAt.Before(h[j].expiresAt)
}

func (h expiryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *expiryHeap) Push(x any) {
	e := x.(*entry)
	e.heapIndex = len(*h)
	*h = append(*h, e)
}

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	e.heapIndex = -1
	*h = old[:n-1]
	return e
}

// popExpired removes and returns entries that lapsed at or before now.
func (h *expiryHeap) popExpired(now time.Time) []*entry {
	var out []*entry
	for h.Len() > 0 && !(*h)[0].expiresAt.After(now) {
		out = append(out, heap.Pop(h).(*entry))
	}
	return out
}

// earliest returns the next expiry, if any.
func (h expiryHeap) earliest() (time.Time, bool) {
	if len(h) == 0 {
		return time.Time{}, false
	}
	return h[0].expiresAt, true
}
