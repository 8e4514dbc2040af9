package physics

import "github.com/vovakirdan/tui-suika/internal/core"

// Engine is the capability set the game rules need from a physics world.
// World is the only production implementation; tests may substitute fakes.
type Engine interface {
	// CreateCircle builds a dynamic circle. It is not simulated until Add.
	CreateCircle(pos core.Vec2, radius float64, m Material) *Body
	// CreateBox builds a box centered on center. It is not simulated until Add.
	CreateBox(center core.Vec2, w, h float64, static bool, m Material) *Body

	Add(b *Body)
	Remove(id BodyID)
	// Clear removes every body. Subscribed handlers are kept.
	Clear()

	Body(id BodyID) (*Body, bool)
	// Bodies returns live bodies in insertion order.
	Bodies() []*Body

	SetVelocity(id BodyID, v core.Vec2)
	// ApplyForce accumulates a force for the next step. Bodies do not
	// rotate, so at only matters to callers that track it.
	ApplyForce(id BodyID, at, f core.Vec2)

	OnContactStart(h ContactHandler)
	OnStepComplete(h StepHandler)

	// Step advances the world by deltaMS milliseconds. No-op while stopped.
	Step(deltaMS float64)
	Run()
	Stop()
	Running() bool
}

var _ Engine = (*World)(nil)
