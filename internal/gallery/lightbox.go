package gallery

import "media-gallery/internal/domain/media"

// Effects receives the side effects of lightbox transitions
type Effects interface {
	SuspendScroll()
	RestoreScroll()
	StopPlayback(e media.Entry)
}

// Lightbox tracks at most one open entry
type Lightbox struct {
	open    *media.Entry
	effects Effects
}

func NewLightbox(effects Effects) *Lightbox {
	return &Lightbox{effects: effects}
}

// Open shows e, replacing whatever was open
func (l *Lightbox) Open(e media.Entry) {
	l.open = &e
	l.effects.SuspendScroll()
}

// Close hides the lightbox. It is valid in any state.
func (l *Lightbox) Close() {
	prev := l.open
	l.open = nil
	if prev != nil && prev.IsVideo() {
		l.effects.StopPlayback(*prev)
	}
	l.effects.RestoreScroll()
}

// Current returns the open entry, if any
func (l *Lightbox) Current() (media.Entry, bool) {
	if l.open == nil {
		return media.Entry{}, false
	}
	return *l.open, true
}

func (l *Lightbox) IsOpen() bool {
	return l.open != nil
}
