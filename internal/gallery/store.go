// Package gallery holds the media collection state, the tile renderer and
// the lightbox, driven by a single-owner session event loop.
package gallery

import "media-gallery/internal/domain/media"

// Store is the single source of truth for the media collection and the
// active filter. It is not safe for concurrent use; Session owns it.
type Store struct {
	rng     media.RandomSource
	all     []media.Entry
	filter  media.Filter
	visible []media.Entry
}

// NewStore creates an empty store shuffling with rng
func NewStore(rng media.RandomSource) *Store {
	return &Store{
		rng:    rng,
		filter: media.FilterAll,
	}
}

// Initialize replaces the collection with a random permutation of seed
// and resets the filter to all entries
func (s *Store) Initialize(seed []media.Entry) {
	s.all = make([]media.Entry, len(seed))
	copy(s.all, seed)
	Shuffle(s.all, s.rng)
	s.filter = media.FilterAll
	s.refresh()
}

// Shuffle permutes entries in place with the Fisher-Yates algorithm
func Shuffle(entries []media.Entry, rng media.RandomSource) {
	for i := len(entries) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		entries[i], entries[j] = entries[j], entries[i]
	}
}

// SetFilter changes the active filter
func (s *Store) SetFilter(f media.Filter) {
	s.filter = f
	s.refresh()
}

// Delete removes the entry with id. Unknown ids are ignored.
func (s *Store) Delete(id int) (media.Entry, bool) {
	for i, e := range s.all {
		if e.ID != id {
			continue
		}
		s.all = append(s.all[:i:i], s.all[i+1:]...)
		s.refresh()
		return e, true
	}
	return media.Entry{}, false
}

// Counts are computed over the whole collection regardless of the filter
func (s *Store) Counts() media.Counts {
	return media.CountEntries(s.all)
}

// Lookup finds an entry by id
func (s *Store) Lookup(id int) (media.Entry, bool) {
	for _, e := range s.all {
		if e.ID == id {
			return e, true
		}
	}
	return media.Entry{}, false
}

func (s *Store) Filter() media.Filter {
	return s.filter
}

// All returns a copy of the collection in shuffle order
func (s *Store) All() []media.Entry {
	out := make([]media.Entry, len(s.all))
	copy(out, s.all)
	return out
}

// Visible returns a copy of the filtered subset in collection order
func (s *Store) Visible() []media.Entry {
	out := make([]media.Entry, len(s.visible))
	copy(out, s.visible)
	return out
}

func (s *Store) refresh() {
	visible := make([]media.Entry, 0, len(s.all))
	for _, e := range s.all {
		if s.filter.Matches(e.Kind) {
			visible = append(visible, e)
		}
	}
	s.visible = visible
}
