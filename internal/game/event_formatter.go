package game

import (
	"fmt"
	"strings"

	"github.com/lox/golfforbots/internal/course"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowCoordinates bool // Include landing coordinates
	ShowClubChanges bool // Format club changes instead of dropping them
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any event as a log line. Events the options hide format as
// the empty string.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch ev := event.(type) {
	case StrokeEvent:
		return ef.FormatStroke(ev)
	case PenaltyEvent:
		return ef.FormatPenalty(ev)
	case HoleCompleteEvent:
		return ef.FormatHoleComplete(ev)
	case NewHoleEvent:
		return ef.FormatNewHole(ev)
	case ClubChangeEvent:
		if ef.opts.ShowClubChanges {
			return fmt.Sprintf("Club: %s", ev.Name)
		}
	}
	return ""
}

// FormatStroke formats a resolved stroke
func (ef *EventFormatter) FormatStroke(event StrokeEvent) string {
	r := event.Result
	text := fmt.Sprintf("%s from the %s: %.0f yds into the %s",
		r.Club, lower(r.Lie), r.Distance(), lower(r.Terrain))
	if r.Terrain == course.OutOfBounds {
		text = fmt.Sprintf("%s from the %s: %.0f yds out of bounds", r.Club, lower(r.Lie), r.Distance())
	}
	if ef.opts.ShowCoordinates {
		text += fmt.Sprintf(" at %s", r.Landing)
	}
	return text
}

// FormatPenalty formats a penalty
func (ef *EventFormatter) FormatPenalty(event PenaltyEvent) string {
	return fmt.Sprintf("Penalty: +%d, replay from %s", event.Strokes, event.Result.Final)
}

// FormatHoleComplete formats the end of a hole
func (ef *EventFormatter) FormatHoleComplete(event HoleCompleteEvent) string {
	return fmt.Sprintf("Hole %d complete in %d (%s)", event.Hole, event.Score, ToParString(event.ToPar()))
}

// FormatNewHole formats the start of a hole
func (ef *EventFormatter) FormatNewHole(event NewHoleEvent) string {
	return fmt.Sprintf("Hole %d: par %d, difficulty %d, %.0f yds to the cup",
		event.Hole, event.Par, event.Difficulty, event.Tee.Distance(event.Cup))
}

// ToParString renders a score relative to par the way a scorecard does.
func ToParString(d int) string {
	switch {
	case d == 0:
		return "E"
	case d > 0:
		return fmt.Sprintf("+%d", d)
	default:
		return fmt.Sprintf("%d", d)
	}
}

func lower(s fmt.Stringer) string {
	return strings.ToLower(s.String())
}
