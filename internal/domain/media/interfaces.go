package media

import "context"

// RandomSource supplies uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// DeletionLog records removed entry ids across process restarts.
// It is optional and non-authoritative: the in-memory store stays the
// source of truth for the running session.
type DeletionLog interface {
	// Record remembers that the entry with id was deleted
	Record(ctx context.Context, id int) error

	// Deleted returns every recorded id
	Deleted(ctx context.Context) ([]int, error)
}

// ExcludeDeleted returns the entries whose ids are not in deleted,
// preserving order
func ExcludeDeleted(entries []Entry, deleted []int) []Entry {
	if len(deleted) == 0 {
		return entries
	}
	gone := make(map[int]struct{}, len(deleted))
	for _, id := range deleted {
		gone[id] = struct{}{}
	}
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := gone[e.ID]; !ok {
			kept = append(kept, e)
		}
	}
	return kept
}
