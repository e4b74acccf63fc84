// Package game implements the stroke-by-stroke state machine for one hole
// of golf.
//
// The main type is Engine, which owns the generated layout, the ball, the
// score, the current club and lie, and the random source every stroke is
// drawn from.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e, err := game.NewEngine(rng, 4, 1)
//	if err != nil {
//	    return err
//	}
//	res, err := e.Stroke(e.Layout().Cup())
//	if e.Phase() == game.HoleComplete {
//	    fmt.Println("holed out in", e.Score())
//	}
//
// # Phases
//
// An engine is Aiming until a stroke is played, Resolving while the landing
// point is sampled and classified, and HoleComplete once the ball comes to
// rest on the green. NewHole returns it to Aiming on a fresh layout.
//
// # Events
//
// Every state change is published on an EventBus. The terminal UI and the
// metrics collector subscribe to it rather than polling the engine.
package game
