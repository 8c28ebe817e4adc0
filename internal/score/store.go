package score

import (
	"context"
	"strconv"
)

// Store persists the score under a single well-known key.
//
// Failure semantics: a read that errors or finds garbage reports 0, and a
// failed write is dropped. Callers never see a storage error. Concurrent
// writers (two instances sharing the same backing key) are last-write-wins
// with no conflict detection; reconciliation in the Synchronizer narrows the
// disagreement window but does not eliminate it.
type Store interface {
	ReadScore(ctx context.Context) float64
	WriteScore(ctx context.Context, value float64)
}

// Format renders the canonical decimal form: shortest representation that
// round-trips, so 5 stores as "5" and 10.5 as "10.5".
func Format(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Parse reads the canonical form back. Garbage reports (0, false).
func Parse(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
