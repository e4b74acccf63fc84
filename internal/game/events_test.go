package game

import (
	"testing"

	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestEventBus(t *testing.T) {
	t.Parallel()

	bus := NewEventBus()
	a, b := &recorder{}, &recorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)

	bus.Publish(NewClubChangeEvent(1, "3 Wood"))
	bus.Unsubscribe(a)
	bus.Publish(NewClubChangeEvent(2, "5 Wood"))

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 2)
	assert.False(t, b.events[0].Timestamp().IsZero())
}

func TestEventFormatter(t *testing.T) {
	t.Parallel()

	res := StrokeResult{
		Club:    "7 Iron",
		Lie:     course.Fairway,
		From:    geom.Pt(100, 100),
		Landing: geom.Pt(260, 220),
		Final:   geom.Pt(260, 220),
		Terrain: course.Bunker,
	}

	tests := []struct {
		name     string
		opts     FormattingOptions
		event    GameEvent
		expected string
	}{
		{
			name:     "stroke",
			event:    NewStrokeEvent(res),
			expected: "7 Iron from the fairway: 200 yds into the bunker",
		},
		{
			name:     "stroke with coordinates",
			opts:     FormattingOptions{ShowCoordinates: true},
			event:    NewStrokeEvent(res),
			expected: "7 Iron from the fairway: 200 yds into the bunker at (260.00, 220.00)",
		},
		{
			name: "out of bounds",
			event: NewStrokeEvent(StrokeResult{
				Club: "Driver", Lie: course.Teebox, From: geom.Pt(0, 0), Landing: geom.Pt(0, 250), Terrain: course.OutOfBounds,
			}),
			expected: "Driver from the teebox: 250 yds out of bounds",
		},
		{
			name:     "penalty",
			event:    NewPenaltyEvent(StrokeResult{Final: geom.Pt(1, 2)}, 2),
			expected: "Penalty: +2, replay from (1.00, 2.00)",
		},
		{
			name:     "hole complete over par",
			event:    NewHoleCompleteEvent(3, 4, 6),
			expected: "Hole 3 complete in 6 (+2)",
		},
		{
			name:     "hole complete at par",
			event:    NewHoleCompleteEvent(1, 4, 4),
			expected: "Hole 1 complete in 4 (E)",
		},
		{
			name:     "new hole",
			event:    NewNewHoleEvent(2, 5, 1, geom.Pt(0, 0), geom.Pt(300, 400), 1),
			expected: "Hole 2: par 5, difficulty 1, 500 yds to the cup",
		},
		{
			name:     "club change hidden",
			event:    NewClubChangeEvent(1, "3 Wood"),
			expected: "",
		},
		{
			name:     "club change shown",
			opts:     FormattingOptions{ShowClubChanges: true},
			event:    NewClubChangeEvent(1, "3 Wood"),
			expected: "Club: 3 Wood",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewEventFormatter(tt.opts).Format(tt.event))
		})
	}
	assert.Equal(t, "-1", ToParString(-1))
}
