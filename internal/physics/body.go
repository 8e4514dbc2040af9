// Package physics provides the rigid-body world the merge game runs on:
// dynamic circles and static boxes under gravity, with contact-start
// notifications and per-step hooks.
//
// World units follow the canvas the game was tuned for: Y grows downward
// and velocities are measured in units per 1000/60 ms step.
package physics

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-suika/internal/core"
)

// BodyID identifies a body within one World. IDs are never reused.
type BodyID uint64

// Kind is the collision shape of a body.
type Kind uint8

const (
	KindCircle Kind = iota
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// Material holds the surface and mass parameters of a body.
type Material struct {
	Friction    float64
	Restitution float64
	Slop        float64 // Penetration tolerated before positional correction
	Density     float64 // Mass per unit area
}

// DefaultMaterial returns the material used for dropped items.
func DefaultMaterial() Material {
	return Material{
		Friction:    0.2,
		Restitution: 0.15,
		Slop:        0.05,
		Density:     0.001,
	}
}

// Body is a simulated object. Bodies do not rotate.
// Position is the center for both circles and boxes.
type Body struct {
	ID       BodyID
	Kind     Kind
	Label    string
	Position core.Vec2
	Velocity core.Vec2
	Radius   float64 // Circles only
	Width    float64 // Boxes only
	Height   float64 // Boxes only
	Static   bool
	Mass     float64
	InvMass  float64
	Material Material

	force core.Vec2
	obj   *resolv.Object
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}

// InWorld reports whether the body is currently part of a world.
func (b *Body) InWorld() bool {
	return b.obj != nil
}

// Bounds returns the axis-aligned bounding box as min and max corners.
func (b *Body) Bounds() (minX, minY, maxX, maxY float64) {
	hw, hh := b.halfExtents()
	return b.Position.X - hw, b.Position.Y - hh, b.Position.X + hw, b.Position.Y + hh
}

func (b *Body) halfExtents() (float64, float64) {
	if b.Kind == KindCircle {
		return b.Radius, b.Radius
	}
	return b.Width / 2, b.Height / 2
}

func (b *Body) area() float64 {
	if b.Kind == KindCircle {
		return circleArea(b.Radius)
	}
	return b.Width * b.Height
}

// setMass derives mass from density and area. Static bodies have
// infinite mass.
func (b *Body) setMass() {
	if b.Static {
		b.Mass = 0
		b.InvMass = 0
		return
	}
	b.Mass = b.Material.Density * b.area()
	if b.Mass <= 0 {
		b.Mass = 1
	}
	b.InvMass = 1 / b.Mass
}

// Pair is an unordered pair of bodies, normalized so that A < B.
type Pair struct {
	A, B BodyID
}

// MakePair builds a normalized pair.
func MakePair(a, b BodyID) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Has reports whether id is one side of the pair.
func (p Pair) Has(id BodyID) bool {
	return p.A == id || p.B == id
}

// ContactHandler receives the pairs that started touching during a step.
type ContactHandler func(pairs []Pair)

// StepHandler runs after every completed step.
type StepHandler func()
