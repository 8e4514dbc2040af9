package physics

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-suika/internal/core"
)

// baseDeltaMS is the step length velocities are expressed against.
const baseDeltaMS = 1000.0 / 60.0

// restingSpeed is the approach speed below which contacts do not bounce.
const restingSpeed = 1.0

// positionCorrection is the share of excess penetration resolved per iteration.
const positionCorrection = 0.4

// maxSubsteps bounds how finely one step is split when bodies move fast.
const maxSubsteps = 32

// Config holds world-wide simulation parameters.
type Config struct {
	Gravity      core.Vec2
	GravityScale float64
	AirFriction  float64
	Iterations   int

	// MaxTravel caps how far a body moves between two collision passes.
	// A step is split into substeps so no body travels more than
	// min(radius, MaxTravel) per substep. Zero caps travel at the radius.
	MaxTravel float64

	// Extent of the broad-phase grid. Bodies outside
	// [-Margin, Width+Margin] x [-Margin, Height+Margin] are not collided.
	Width, Height float64
	Margin        float64
	CellSize      int
}

// DefaultConfig returns parameters for a 600x800 field.
func DefaultConfig() Config {
	return Config{
		Gravity:      core.V(0, 1),
		GravityScale: 0.001,
		AirFriction:  0.01,
		Iterations:   6,
		MaxTravel:    25,
		Width:        600,
		Height:       800,
		Margin:       256,
		CellSize:     32,
	}
}

// World is an Engine backed by a resolv spatial hash for the broad phase.
// It is not safe for concurrent use; handlers run synchronously inside Step.
type World struct {
	cfg   Config
	space *resolv.Space

	bodies []*Body
	index  map[BodyID]*Body
	nextID BodyID

	touching map[Pair]struct{}

	contactHandlers []ContactHandler
	stepHandlers    []StepHandler

	running bool
	steps   int
}

// NewWorld creates a stopped, empty world.
func NewWorld(cfg Config) *World {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = 32
	}
	if cfg.Margin < 0 {
		cfg.Margin = 0
	}
	w := &World{cfg: cfg}
	w.reset()
	return w
}

func (w *World) reset() {
	sw := int(math.Ceil(w.cfg.Width + 2*w.cfg.Margin))
	sh := int(math.Ceil(w.cfg.Height + 2*w.cfg.Margin))
	w.space = resolv.NewSpace(sw, sh, w.cfg.CellSize, w.cfg.CellSize)
	w.bodies = nil
	w.index = make(map[BodyID]*Body)
	w.touching = make(map[Pair]struct{})
}

// Config returns the world parameters.
func (w *World) Config() Config {
	return w.cfg
}

// Steps returns how many steps have been simulated since creation.
func (w *World) Steps() int {
	return w.steps
}

func (w *World) newID() BodyID {
	w.nextID++
	return w.nextID
}

// CreateCircle builds a dynamic circle.
func (w *World) CreateCircle(pos core.Vec2, radius float64, m Material) *Body {
	b := &Body{
		ID:       w.newID(),
		Kind:     KindCircle,
		Position: pos,
		Radius:   radius,
		Material: m,
	}
	b.setMass()
	return b
}

// CreateBox builds a box centered on center.
func (w *World) CreateBox(center core.Vec2, width, height float64, static bool, m Material) *Body {
	b := &Body{
		ID:       w.newID(),
		Kind:     KindBox,
		Position: center,
		Width:    width,
		Height:   height,
		Static:   static,
		Material: m,
	}
	b.setMass()
	return b
}

// Add inserts a body into the simulation. Adding a body twice is a no-op.
func (w *World) Add(b *Body) {
	if b == nil || b.obj != nil {
		return
	}
	if _, exists := w.index[b.ID]; exists {
		return
	}
	minX, minY, maxX, maxY := b.Bounds()
	b.obj = resolv.NewObject(minX+w.cfg.Margin, minY+w.cfg.Margin, maxX-minX, maxY-minY)
	b.obj.Data = b
	w.space.Add(b.obj)

	w.bodies = append(w.bodies, b)
	w.index[b.ID] = b
}

// Remove takes a body out of the simulation. Unknown IDs are ignored.
func (w *World) Remove(id BodyID) {
	b, ok := w.index[id]
	if !ok {
		return
	}
	w.space.Remove(b.obj)
	b.obj = nil
	delete(w.index, id)

	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for p := range w.touching {
		if p.Has(id) {
			delete(w.touching, p)
		}
	}
}

// Clear removes every body but keeps handlers.
func (w *World) Clear() {
	for _, b := range w.bodies {
		b.obj = nil
	}
	w.reset()
}

// Body looks up a live body.
func (w *World) Body(id BodyID) (*Body, bool) {
	b, ok := w.index[id]
	return b, ok
}

// Bodies returns a copy of the live body list in insertion order.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// SetVelocity overwrites a body's velocity.
func (w *World) SetVelocity(id BodyID, v core.Vec2) {
	if b, ok := w.index[id]; ok && !b.Static {
		b.Velocity = v
	}
}

// ApplyForce accumulates a force that is integrated and cleared on the next step.
func (w *World) ApplyForce(id BodyID, at, f core.Vec2) {
	if b, ok := w.index[id]; ok && !b.Static {
		b.force = b.force.Add(f)
	}
}

// OnContactStart subscribes to contact-start batches.
func (w *World) OnContactStart(h ContactHandler) {
	w.contactHandlers = append(w.contactHandlers, h)
}

// OnStepComplete subscribes to step completion.
func (w *World) OnStepComplete(h StepHandler) {
	w.stepHandlers = append(w.stepHandlers, h)
}

// Run resumes stepping.
func (w *World) Run() { w.running = true }

// Stop halts stepping. A step already in progress finishes.
func (w *World) Stop() { w.running = false }

// Running reports whether Step advances the world.
func (w *World) Running() bool { return w.running }

// Step advances the simulation by deltaMS.
//
// Order: integrate forces and gravity into velocities, then move in one or
// more substeps with detect and solve after each, then notify contact-start
// handlers with the pairs that were not touching on the previous step, then
// step-complete handlers. Forces are integrated once per step whatever the
// substep count.
func (w *World) Step(deltaMS float64) {
	if !w.running || deltaMS <= 0 {
		return
	}
	w.steps++

	w.integrate(deltaMS)

	n := w.substeps()
	var contacts []contact
	for i := 0; i < n; i++ {
		w.move(1 / float64(n))
		found := w.detect()
		w.solve(found)
		contacts = append(contacts, found...)
	}
	w.syncBroadPhase()

	started := w.diffTouching(contacts)

	if len(started) > 0 {
		for _, h := range w.contactHandlers {
			h(started)
		}
	}
	for _, h := range w.stepHandlers {
		h()
	}
}

func (w *World) integrate(deltaMS float64) {
	dt2 := deltaMS * deltaMS
	damping := 1 - w.cfg.AirFriction*deltaMS/baseDeltaMS
	gravity := w.cfg.Gravity.Scale(w.cfg.GravityScale * dt2)

	for _, b := range w.bodies {
		if b.Static {
			b.force = core.Vec2{}
			continue
		}
		acc := b.force.Scale(b.InvMass * dt2).Add(gravity)
		b.Velocity = b.Velocity.Scale(damping).Add(acc)
		b.force = core.Vec2{}
	}
}

// substeps returns how many moves this step needs so that no dynamic body
// travels further than its travel limit in one move.
func (w *World) substeps() int {
	n := 1
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		limit := w.travelLimit(b)
		if limit <= 0 {
			continue
		}
		if k := int(math.Ceil(b.Speed() / limit)); k > n {
			n = k
		}
	}
	if n > maxSubsteps {
		n = maxSubsteps
	}
	return n
}

func (w *World) travelLimit(b *Body) float64 {
	limit := b.Radius
	if b.Kind == KindBox {
		limit = math.Min(b.Width, b.Height) / 2
	}
	if w.cfg.MaxTravel > 0 && w.cfg.MaxTravel < limit {
		limit = w.cfg.MaxTravel
	}
	return limit
}

// move advances dynamic bodies by frac of their velocity.
func (w *World) move(frac float64) {
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Scale(frac))
	}
	w.syncBroadPhase()
}

func (w *World) syncBroadPhase() {
	for _, b := range w.bodies {
		if b.Static || b.obj == nil {
			continue
		}
		minX, minY, _, _ := b.Bounds()
		b.obj.X = minX + w.cfg.Margin
		b.obj.Y = minY + w.cfg.Margin
		b.obj.Update()
	}
}

// detect gathers overlapping pairs, sorted for deterministic solving.
func (w *World) detect() []contact {
	seen := make(map[Pair]struct{})
	var contacts []contact

	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		check := b.obj.Check(0, 0)
		if check == nil {
			continue
		}
		for _, o := range check.Objects {
			other, ok := o.Data.(*Body)
			if !ok || other == b {
				continue
			}
			p := MakePair(b.ID, other.ID)
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}

			first, second := b, other
			if first.ID > second.ID {
				first, second = second, first
			}
			if c, hit := collide(first, second); hit {
				contacts = append(contacts, c)
			}
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].a.ID != contacts[j].a.ID {
			return contacts[i].a.ID < contacts[j].a.ID
		}
		return contacts[i].b.ID < contacts[j].b.ID
	})
	return contacts
}

func (w *World) solve(contacts []contact) {
	for iter := 0; iter < w.cfg.Iterations; iter++ {
		for i := range contacts {
			c, hit := collide(contacts[i].a, contacts[i].b)
			if !hit {
				continue
			}
			resolveVelocity(c)
			resolvePosition(c)
		}
	}
}

func resolveVelocity(c contact) {
	invSum := c.a.InvMass + c.b.InvMass
	if invSum == 0 {
		return
	}
	rel := c.b.Velocity.Sub(c.a.Velocity)
	vn := rel.Dot(c.normal)
	if vn >= 0 {
		return // separating
	}

	e := math.Max(c.a.Material.Restitution, c.b.Material.Restitution)
	if -vn < restingSpeed {
		e = 0
	}
	j := -(1 + e) * vn / invSum
	impulse := c.normal.Scale(j)
	c.a.Velocity = c.a.Velocity.Sub(impulse.Scale(c.a.InvMass))
	c.b.Velocity = c.b.Velocity.Add(impulse.Scale(c.b.InvMass))

	// Coulomb friction along the tangent
	rel = c.b.Velocity.Sub(c.a.Velocity)
	tangent := rel.Sub(c.normal.Scale(rel.Dot(c.normal))).Normalize()
	if tangent == (core.Vec2{}) {
		return
	}
	mu := math.Min(c.a.Material.Friction, c.b.Material.Friction)
	jt := -rel.Dot(tangent) / invSum
	if limit := mu * j; math.Abs(jt) > limit {
		jt = math.Copysign(limit, jt)
	}
	ft := tangent.Scale(jt)
	c.a.Velocity = c.a.Velocity.Sub(ft.Scale(c.a.InvMass))
	c.b.Velocity = c.b.Velocity.Add(ft.Scale(c.b.InvMass))
}

func resolvePosition(c contact) {
	invSum := c.a.InvMass + c.b.InvMass
	if invSum == 0 {
		return
	}
	slop := math.Max(c.a.Material.Slop, c.b.Material.Slop)
	excess := c.depth - slop
	if excess <= 0 {
		return
	}
	corr := c.normal.Scale(excess * positionCorrection / invSum)
	c.a.Position = c.a.Position.Sub(corr.Scale(c.a.InvMass))
	c.b.Position = c.b.Position.Add(corr.Scale(c.b.InvMass))
}

// diffTouching replaces the touching set with the pairs that touched in any
// substep of this step and returns the pairs that are new, in ascending order.
func (w *World) diffTouching(contacts []contact) []Pair {
	current := make(map[Pair]struct{}, len(contacts))
	var started []Pair
	for _, c := range contacts {
		p := MakePair(c.a.ID, c.b.ID)
		if _, dup := current[p]; dup {
			continue
		}
		current[p] = struct{}{}
		if _, was := w.touching[p]; !was {
			started = append(started, p)
		}
	}
	w.touching = current

	sort.Slice(started, func(i, j int) bool {
		if started[i].A != started[j].A {
			return started[i].A < started[j].A
		}
		return started[i].B < started[j].B
	})
	return started
}

// Touching reports whether two bodies were in contact after the last step.
func (w *World) Touching(a, b BodyID) bool {
	_, ok := w.touching[MakePair(a, b)]
	return ok
}
