package memory

import "lexeval/pkg/ratelimiter"

// leaseState remembers what a lease reserved until it completes.
type leaseState struct {
	reservedAtUnixMs int64
	requirements     []ratelimiter.Requirement
}

func requirementsEqual(a, b []ratelimiter.Requirement) bool {
	if len(a) != len(b) {
		return false
	}
	lookup := make(map[ratelimiter.LimitKey]uint64, len(a))
	for _, req := range a {
		lookup[req.Key] = req.Amount
	}
	for _, req := range b {
		if amount, ok := lookup[req.Key]; !ok || amount != req.Amount {
			return false
		}
	}
	return true
}
