package suika

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-suika/internal/core"
	"github.com/vovakirdan/tui-suika/internal/physics"
)

// fakeEngine is a physics.Engine that never moves anything. Tests queue
// contact batches and positions by hand.
type fakeEngine struct {
	nextID  physics.BodyID
	bodies  map[physics.BodyID]*physics.Body
	order   []physics.BodyID
	forces  map[physics.BodyID]core.Vec2
	running bool
	steps   int
	cleared int

	contactHandlers []physics.ContactHandler
	stepHandlers    []physics.StepHandler
	queued          [][]physics.Pair
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		bodies: make(map[physics.BodyID]*physics.Body),
		forces: make(map[physics.BodyID]core.Vec2),
	}
}

func (f *fakeEngine) CreateCircle(pos core.Vec2, radius float64, m physics.Material) *physics.Body {
	f.nextID++
	mass := m.Density * math.Pi * radius * radius
	return &physics.Body{
		ID: f.nextID, Kind: physics.KindCircle, Position: pos, Radius: radius,
		Material: m, Mass: mass, InvMass: 1 / mass,
	}
}

func (f *fakeEngine) CreateBox(center core.Vec2, w, h float64, static bool, m physics.Material) *physics.Body {
	f.nextID++
	return &physics.Body{ID: f.nextID, Kind: physics.KindBox, Position: center, Width: w, Height: h, Static: static, Material: m}
}

func (f *fakeEngine) Add(b *physics.Body) {
	if _, ok := f.bodies[b.ID]; ok {
		return
	}
	f.bodies[b.ID] = b
	f.order = append(f.order, b.ID)
}

func (f *fakeEngine) Remove(id physics.BodyID) {
	delete(f.bodies, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

func (f *fakeEngine) Clear() {
	f.bodies = make(map[physics.BodyID]*physics.Body)
	f.order = nil
	f.forces = make(map[physics.BodyID]core.Vec2)
	f.cleared++
}

func (f *fakeEngine) Body(id physics.BodyID) (*physics.Body, bool) {
	b, ok := f.bodies[id]
	return b, ok
}

func (f *fakeEngine) Bodies() []*physics.Body {
	out := make([]*physics.Body, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.bodies[id])
	}
	return out
}

func (f *fakeEngine) SetVelocity(id physics.BodyID, v core.Vec2) {
	if b, ok := f.bodies[id]; ok {
		b.Velocity = v
	}
}

func (f *fakeEngine) ApplyForce(id physics.BodyID, _ core.Vec2, force core.Vec2) {
	f.forces[id] = f.forces[id].Add(force)
}

func (f *fakeEngine) OnContactStart(h physics.ContactHandler) {
	f.contactHandlers = append(f.contactHandlers, h)
}

func (f *fakeEngine) OnStepComplete(h physics.StepHandler) {
	f.stepHandlers = append(f.stepHandlers, h)
}

func (f *fakeEngine) Step(float64) {
	if !f.running {
		return
	}
	f.steps++
	for _, batch := range f.queued {
		for _, h := range f.contactHandlers {
			h(batch)
		}
	}
	f.queued = nil
	for _, h := range f.stepHandlers {
		h()
	}
}

func (f *fakeEngine) Run()          { f.running = true }
func (f *fakeEngine) Stop()         { f.running = false }
func (f *fakeEngine) Running() bool { return f.running }

// queue schedules a contact batch for the next Step.
func (f *fakeEngine) queue(pairs ...physics.Pair) {
	f.queued = append(f.queued, pairs)
}

func newTestMatch(t *testing.T) (*Match, *fakeEngine) {
	t.Helper()
	eng := newFakeEngine()
	m := NewMatch(DefaultSettings(), DefaultTiers(), eng, rand.New(rand.NewSource(1)), nil)
	m.Reset()
	return m, eng
}

// spawnItem creates an item directly through the factory.
func spawnItem(t *testing.T, m *Match, tier int, x, y float64) *ItemMeta {
	t.Helper()
	it, err := m.Factory.Create(tier, core.V(x, y), m.Scheduler().Now())
	if err != nil {
		t.Fatalf("Create(%d) failed: %v", tier, err)
	}
	return it
}

func pairOf(a, b *ItemMeta) physics.Pair {
	return physics.MakePair(a.Body, b.Body)
}
