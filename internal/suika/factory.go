package suika

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-suika/internal/core"
	"github.com/vovakirdan/tui-suika/internal/physics"
)

// Body labels used in the physics world.
const (
	LabelItem = "item"
	LabelWall = "wall"
)

// Factory turns tiers into physics bodies and tracks them in the side table.
type Factory struct {
	engine   physics.Engine
	state    *State
	settings Settings
}

// NewFactory creates a factory over an engine and state.
func NewFactory(engine physics.Engine, state *State, settings Settings) *Factory {
	return &Factory{engine: engine, state: state, settings: settings}
}

// Radius returns the world radius of a tier.
func (f *Factory) Radius(tier int) float64 {
	return f.settings.WorldRadius(f.state.Tiers().At(tier))
}

// Create adds a dynamic item of the given tier centered at pos.
func (f *Factory) Create(tier int, pos core.Vec2, now time.Duration) (*ItemMeta, error) {
	if !f.state.Tiers().Valid(tier) {
		return nil, fmt.Errorf("create item: tier %d out of range", tier)
	}
	body := f.engine.CreateCircle(pos, f.Radius(tier), f.settings.Material)
	body.Label = LabelItem
	f.engine.Add(body)
	return f.state.track(tier, body.ID, now), nil
}

// Destroy removes an item's body from the world and retires its record.
func (f *Factory) Destroy(id ItemID) {
	m, ok := f.state.Item(id)
	if !ok {
		return
	}
	f.engine.Remove(m.Body)
	f.state.retire(id)
}

// BuildContainer adds the floor and both side walls as static boxes.
// Boxes are centered on the field edges, so half of each wall sits
// outside the field.
func (f *Factory) BuildContainer() []*physics.Body {
	s := f.settings
	m := s.Material
	walls := []*physics.Body{
		f.engine.CreateBox(core.V(s.FieldWidth/2, s.FieldHeight), s.FieldWidth, s.WallThickness, true, m),
		f.engine.CreateBox(core.V(0, s.FieldHeight/2), s.WallThickness, s.FieldHeight, true, m),
		f.engine.CreateBox(core.V(s.FieldWidth, s.FieldHeight/2), s.WallThickness, s.FieldHeight, true, m),
	}
	for _, w := range walls {
		w.Label = LabelWall
		f.engine.Add(w)
	}
	return walls
}
