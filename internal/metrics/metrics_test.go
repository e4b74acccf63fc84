package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lox/golfforbots/internal/course"
	"github.com/lox/golfforbots/internal/game"
	"github.com/lox/golfforbots/internal/geom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager()

			Convey("Then it has its own registry", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When creating two managers on separate registries", func() {
			So(func() {
				NewManager(WithRegistry(prometheus.NewRegistry()))
				NewManager(WithRegistry(prometheus.NewRegistry()))
			}, ShouldNotPanic)
		})

		Convey("When registering twice on one registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithRegistry(registry))

			So(func() { NewManager(WithRegistry(registry)) }, ShouldPanic)
		})
	})
}

func TestSessionMetrics(t *testing.T) {
	Convey("Given a manager", t, func() {
		m := NewManager(WithNamespace("test"), WithSubsystem("sessions"), WithLatencyBuckets([]float64{0.01, 0.1}))

		Convey("When sessions open and close", func() {
			m.SessionOpened()
			m.SessionOpened()
			m.SessionClosed()

			So(testutil.ToFloat64(m.sessionsActive), ShouldEqual, 1)
			So(testutil.ToFloat64(m.sessionsTotal), ShouldEqual, 2)
		})

		Convey("When steps and errors are recorded", func() {
			m.ObserveStep(3 * time.Millisecond)
			m.RecordError("invalid_action")
			m.RecordError("invalid_action")
			m.RecordTruncation()

			So(testutil.CollectAndCount(m.stepLatency), ShouldEqual, 1)
			So(testutil.ToFloat64(m.errors.WithLabelValues("invalid_action")), ShouldEqual, 2)
			So(testutil.ToFloat64(m.truncations), ShouldEqual, 1)
		})

		Convey("When the handler is scraped", func() {
			m.SessionOpened()
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "test_sessions_sessions_active 1")
		})
	})
}

func TestEventMetrics(t *testing.T) {
	Convey("Given a manager subscribed to an event bus", t, func() {
		m := NewManager()
		bus := game.NewEventBus()
		bus.Subscribe(m)

		Convey("When a hole is played", func() {
			bus.Publish(game.NewNewHoleEvent(1, 4, 1, geom.Pt(0, 0), geom.Pt(1, 1), 3))
			penalty := game.StrokeResult{Outcome: game.OutcomePenalty, Terrain: course.WaterHazard, Strokes: 2}
			bus.Publish(game.NewStrokeEvent(penalty))
			bus.Publish(game.NewPenaltyEvent(penalty, 2))
			bus.Publish(game.NewStrokeEvent(game.StrokeResult{Outcome: game.OutcomeHoled, Terrain: course.Green}))
			bus.Publish(game.NewHoleCompleteEvent(1, 4, 3))

			So(testutil.ToFloat64(m.holesStarted), ShouldEqual, 1)
			So(testutil.ToFloat64(m.regenerations), ShouldEqual, 2)
			So(testutil.ToFloat64(m.strokes.WithLabelValues("penalty", "Water Hazard")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.strokes.WithLabelValues("on_green", "Green")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.penalties), ShouldEqual, 2)
			So(testutil.ToFloat64(m.holesComplete), ShouldEqual, 1)
			So(testutil.CollectAndCount(m.holeScore), ShouldEqual, 1)
		})
	})
}

func TestDisabledManager(t *testing.T) {
	Convey("Given disabled or nil managers", t, func() {
		disabled := NewManager(WithMetricsEnabled(false))
		var nilManager *Manager

		Convey("Recording is a no-op", func() {
			So(func() {
				for _, m := range []*Manager{disabled, nilManager} {
					m.SessionOpened()
					m.SessionClosed()
					m.ObserveStep(time.Second)
					m.RecordError("x")
					m.RecordTruncation()
					m.OnEvent(game.NewHoleCompleteEvent(1, 4, 4))
				}
			}, ShouldNotPanic)
			So(testutil.ToFloat64(disabled.sessionsTotal), ShouldEqual, 0)
		})
	})
}
