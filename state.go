// Package beat implements a fixed-timestep real-time loop engine.
//
// A Heart drives the loop: simulation ticks happen at a fixed rate on a
// monotonic Clock, rendering interpolates between the two most recent
// states, and once per second the heart runs housekeeping and refreshes
// its statistics. The building blocks (Sec, Timer, Stat, Span) are
// usable on their own.
//
// Simulation results depend only on the tick rate, never on how fast
// the host happens to render; render pacing is a policy (Limit), not a
// correctness concern.
package beat

// Linear is the capability to form linear combinations. Rendering needs
// it to blend the two most recent states into the frame actually drawn.
//
// Both methods are pure: they return a new value and leave the receiver
// alone, so value receivers are the natural implementation.
type Linear[S any] interface {
	// Add returns the sum of the receiver and other.
	Add(other S) S

	// Scale returns the receiver scaled by k.
	Scale(k float64) S
}

// State is the constraint a simulation state type must satisfy to drive
// a Heart. The driven type S is a plain value type: the heart
// constructs it as the zero value, snapshots it by assignment, and
// hands copies to the renderer, so S must be safe to copy (no sharing
// through pointers the hooks mutate).
//
// The hooks receive the driving Heart and may call its methods,
// including Stop. They all run on the goroutine that called Start.
type State[S any] interface {
	*S
	Linear[S]

	// Init is called exactly once, before the first pass. The timer
	// was started on entry to Start, so it measures startup work.
	// Time spent here is not billed to the first ticks.
	Init(h *Heart, init *Timer)

	// Update advances the simulation by exactly one target tick. It is
	// called as many times per pass as full ticks have elapsed.
	Update(h *Heart)

	// Sec is called once per wall second, after that second's ticks
	// and frame. The statistics still describe the finished cycle;
	// they are refreshed right after this hook returns.
	Sec(h *Heart)
}

// Renderer is the constraint a renderer type must satisfy. R is
// zero-constructed by the heart just like the state.
type Renderer[S, R any] interface {
	*R

	// Render draws one frame. The state is an interpolated snapshot
	// between the two most recent ticks; it is the renderer's to keep.
	// The heart is read-only here by contract: query it freely, but
	// drive it (Stop, SetLimit) only from the state hooks.
	Render(h *Heart, state S)
}
