package pane

// Direction of the movement that produced a selection change.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// Event is the base interface for everything posted to a pane's inbound
// channel.
type Event interface{}

// ===== NAVIGATION EVENTS =====

type DirectoryOpenedEvent struct {
	Path string
}

type TraversedUpEvent struct{}

// ===== SELECTION EVENTS =====

type SelectionMovedEvent struct {
	Index     int
	Extend    bool // shift: range from the anchor
	Additive  bool // ctrl: union with the existing selection
	Direction Direction
}

// ===== FILESYSTEM EVENTS =====

// FilesUpdatedEvent is posted by the watcher after a debounced burst.
type FilesUpdatedEvent struct{}
