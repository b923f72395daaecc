package runner

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// runIDSuffixLen is the number of hex characters kept from the random uuid.
const runIDSuffixLen = 12

// NewRunID returns a sortable run id: UTC timestamp plus a random suffix.
func NewRunID() (string, error) {
	return NewRunIDFrom(time.Now(), rand.Reader)
}

// NewRunIDFrom builds a run id from the given time and random source.
func NewRunIDFrom(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	suffix := hex.EncodeToString(id[:])[:runIDSuffixLen]
	return FormatRunID(now, suffix), nil
}

// FormatRunID joins a timestamp and suffix into a run id.
func FormatRunID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
