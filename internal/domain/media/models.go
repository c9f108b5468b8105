package media

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind is the media type of an entry
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Filter restricts the visible subset of the gallery
type Filter string

const (
	FilterAll   Filter = "all"
	FilterPhoto Filter = "photo"
	FilterVideo Filter = "video"
)

// Entry is a single photo or video in the gallery.
// Entries are never mutated once created.
type Entry struct {
	ID        int    `json:"id" yaml:"id"`
	Src       string `json:"src" yaml:"src"`
	Name      string `json:"name" yaml:"name"`
	SizeBytes int64  `json:"size" yaml:"size"`
	Kind      Kind   `json:"type" yaml:"type"`
}

// Counts holds global statistics over the whole collection
type Counts struct {
	Total  int `json:"total"`
	Photos int `json:"photos"`
	Videos int `json:"videos"`
}

// Domain errors
var (
	ErrInvalidEntry  = errors.New("invalid media entry")
	ErrInvalidKind   = errors.New("invalid media kind")
	ErrDuplicateID   = errors.New("duplicate media id")
	ErrUnknownFilter = errors.New("unknown filter")
	ErrEmptySeed     = errors.New("seed catalogue is empty")
)

const MaxNameLen = 255

// IsVideo reports whether the entry is a video
func (e Entry) IsVideo() bool {
	return e.Kind == KindVideo
}

// Validate checks the entry fields
func (e Entry) Validate() error {
	if e.ID < 0 {
		return fmt.Errorf("%w: id %d must not be negative", ErrInvalidEntry, e.ID)
	}
	if strings.TrimSpace(e.Src) == "" {
		return fmt.Errorf("%w: entry %d has an empty src", ErrInvalidEntry, e.ID)
	}
	if len(e.Name) > MaxNameLen || !utf8.ValidString(e.Name) {
		return fmt.Errorf("%w: entry %d has an invalid name", ErrInvalidEntry, e.ID)
	}
	if e.SizeBytes < 0 {
		return fmt.Errorf("%w: entry %d has a negative size", ErrInvalidEntry, e.ID)
	}
	if e.Kind != KindPhoto && e.Kind != KindVideo {
		return fmt.Errorf("%w: %q", ErrInvalidKind, e.Kind)
	}
	return nil
}

// Matches reports whether an entry of kind k passes the filter
func (f Filter) Matches(k Kind) bool {
	switch f {
	case FilterPhoto:
		return k == KindPhoto
	case FilterVideo:
		return k == KindVideo
	default:
		return true
	}
}

// ParseFilter converts a filter name into a Filter
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll, "":
		return FilterAll, nil
	case FilterPhoto, "photos":
		return FilterPhoto, nil
	case FilterVideo, "videos":
		return FilterVideo, nil
	default:
		return FilterAll, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// Filters lists the filters in display order
func Filters() []Filter {
	return []Filter{FilterAll, FilterPhoto, FilterVideo}
}

// CountEntries computes global counts over entries
func CountEntries(entries []Entry) Counts {
	c := Counts{Total: len(entries)}
	for _, e := range entries {
		switch e.Kind {
		case KindPhoto:
			c.Photos++
		case KindVideo:
			c.Videos++
		}
	}
	return c
}

// ValidateCatalogue checks every entry and that ids are pairwise distinct
func ValidateCatalogue(entries []Entry) error {
	if len(entries) == 0 {
		return ErrEmptySeed
	}
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}
