package suika

import (
	"time"

	"github.com/vovakirdan/tui-suika/internal/core"
	"github.com/vovakirdan/tui-suika/internal/physics"
)

// MergeEvent records one completed merge.
type MergeEvent struct {
	From     int // Tier of the two consumed items
	To       int // Tier of the produced item
	Consumed [2]ItemID
	Item     ItemID
	Position core.Vec2
	Radius   float64 // World radius of the produced item
	Points   int
	Pushed   int // Neighbors hit by the pop
	At       time.Duration
}

// Merger applies the merge rule to contact notifications.
type Merger struct {
	engine   physics.Engine
	state    *State
	factory  *Factory
	sched    *Scheduler
	settings Settings
}

// NewMerger creates a merger.
func NewMerger(engine physics.Engine, state *State, factory *Factory, sched *Scheduler, settings Settings) *Merger {
	return &Merger{engine: engine, state: state, factory: factory, sched: sched, settings: settings}
}

// ResolveBatch processes one step's contact-start pairs in order. A pair
// whose item was consumed earlier in the batch is skipped.
func (m *Merger) ResolveBatch(pairs []physics.Pair) []MergeEvent {
	var events []MergeEvent
	for _, p := range pairs {
		if ev, ok := m.ResolvePair(p); ok {
			events = append(events, ev)
		}
	}
	return events
}

// ResolvePair maps a body pair to items and resolves it. Pairs involving
// non-item bodies are ignored.
func (m *Merger) ResolvePair(p physics.Pair) (MergeEvent, bool) {
	a, ok := m.state.ItemByBody(p.A)
	if !ok {
		return MergeEvent{}, false
	}
	b, ok := m.state.ItemByBody(p.B)
	if !ok {
		return MergeEvent{}, false
	}
	return m.Resolve(a.ID, b.ID)
}

// Resolve merges two touching items when they share a non-terminal tier.
// It reports false, with no side effects, for removed items, differing
// tiers, the terminal tier and after game over.
func (m *Merger) Resolve(aID, bID ItemID) (MergeEvent, bool) {
	if m.state.GameOver() || aID == bID {
		return MergeEvent{}, false
	}
	a, ok := m.state.Item(aID)
	if !ok {
		return MergeEvent{}, false
	}
	b, ok := m.state.Item(bID)
	if !ok {
		return MergeEvent{}, false
	}
	if a.Removed || b.Removed {
		return MergeEvent{}, false
	}
	if a.Tier != b.Tier {
		return MergeEvent{}, false
	}
	to, ok := m.state.Tiers().Next(a.Tier)
	if !ok {
		return MergeEvent{}, false
	}

	ba, okA := m.engine.Body(a.Body)
	bb, okB := m.engine.Body(b.Body)
	if !okA || !okB {
		return MergeEvent{}, false
	}

	// Check-and-set both before any other pair can look at them.
	a.Removed = true
	b.Removed = true

	mid := core.Midpoint(ba.Position, bb.Position)
	m.factory.Destroy(a.ID)
	m.factory.Destroy(b.ID)

	now := m.sched.Now()
	item, err := m.factory.Create(to, mid, now)
	if err != nil {
		return MergeEvent{}, false
	}
	m.engine.SetVelocity(item.Body, m.settings.MergeVelocity)

	newBody, _ := m.engine.Body(item.Body)
	pushed := m.pop(newBody)

	points := m.state.Tiers().At(to).Score * m.settings.MergeMultiplier
	m.state.Ledger().Add(points)

	return MergeEvent{
		From:     a.Tier,
		To:       to,
		Consumed: [2]ItemID{a.ID, b.ID},
		Item:     item.ID,
		Position: mid,
		Radius:   newBody.Radius,
		Points:   points,
		Pushed:   pushed,
		At:       now,
	}, true
}

// pop pushes every other live dynamic item within PopRadiusFactor radii of
// the new item away from its center. The force is the same anywhere in
// range.
func (m *Merger) pop(center *physics.Body) int {
	reach := center.Radius * m.settings.PopRadiusFactor
	force := m.settings.PopCoefficient * center.Mass

	pushed := 0
	for _, b := range m.engine.Bodies() {
		if b.ID == center.ID || b.Static {
			continue
		}
		if meta, ok := m.state.ItemByBody(b.ID); !ok || meta.Removed {
			continue
		}
		d := b.Position.Sub(center.Position)
		if d.Len() >= reach {
			continue
		}
		m.engine.ApplyForce(b.ID, b.Position, d.Normalize().Scale(force))
		pushed++
	}
	return pushed
}
