package gallery

import "media-gallery/internal/domain/media"

// EventType identifies an input event delivered to the session
type EventType string

const (
	EventFilterSelected  EventType = "filter.selected"
	EventTileActivated   EventType = "tile.activated"
	EventDeleteActivated EventType = "delete.activated"
	EventCloseActivated  EventType = "lightbox.close"
	EventBackdropClicked EventType = "lightbox.backdrop"
	EventEscapePressed   EventType = "key.escape"

	// EventRender changes nothing and only asks for a fresh render pass
	EventRender EventType = "render"
)

// Event is a discrete input event. Filter is set for filter selection,
// ID for tile and delete activation.
type Event struct {
	Type   EventType
	Filter media.Filter
	ID     int
}

func (t EventType) valid() bool {
	switch t {
	case EventFilterSelected, EventTileActivated, EventDeleteActivated,
		EventCloseActivated, EventBackdropClicked, EventEscapePressed, EventRender:
		return true
	}
	return false
}

func SelectFilter(f media.Filter) Event { return Event{Type: EventFilterSelected, Filter: f} }
func ActivateTile(id int) Event         { return Event{Type: EventTileActivated, ID: id} }
func ActivateDelete(id int) Event       { return Event{Type: EventDeleteActivated, ID: id} }
func CloseLightbox() Event              { return Event{Type: EventCloseActivated} }
func ClickBackdrop() Event              { return Event{Type: EventBackdropClicked} }
func PressEscape() Event                { return Event{Type: EventEscapePressed} }
func Refresh() Event                    { return Event{Type: EventRender} }
