package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeStroke       EventType = "stroke"
	EventTypePenalty      EventType = "penalty"
	EventTypeHoleComplete EventType = "hole_complete"
	EventTypeNewHole      EventType = "new_hole"
	EventTypeClubChange   EventType = "club_change"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
