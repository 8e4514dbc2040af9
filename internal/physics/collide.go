package physics

import (
	"math"

	"github.com/vovakirdan/tui-suika/internal/core"
)

// contact describes an overlap between two bodies.
// Normal points from a to b.
type contact struct {
	a, b   *Body
	normal core.Vec2
	depth  float64
}

func circleArea(r float64) float64 {
	return math.Pi * r * r
}

// collide runs the narrow phase for a pair. The returned contact keeps
// the pair's original order.
func collide(a, b *Body) (contact, bool) {
	switch {
	case a.Kind == KindCircle && b.Kind == KindCircle:
		return circleCircle(a, b)
	case a.Kind == KindCircle && b.Kind == KindBox:
		return circleBox(a, b)
	case a.Kind == KindBox && b.Kind == KindCircle:
		c, ok := circleBox(b, a)
		if !ok {
			return c, false
		}
		return contact{a: a, b: b, normal: c.normal.Scale(-1), depth: c.depth}, true
	default:
		// Boxes are static container pieces; box-box pairs never matter.
		return contact{}, false
	}
}

func circleCircle(a, b *Body) (contact, bool) {
	d := b.Position.Sub(a.Position)
	dist := d.Len()
	rs := a.Radius + b.Radius
	if dist >= rs {
		return contact{}, false
	}
	n := core.V(0, -1)
	if dist > 1e-9 {
		n = d.Scale(1 / dist)
	}
	return contact{a: a, b: b, normal: n, depth: rs - dist}, true
}

// circleBox collides circle c with box b. The normal points from the
// circle toward the box.
func circleBox(c, b *Body) (contact, bool) {
	hw, hh := b.Width/2, b.Height/2
	local := c.Position.Sub(b.Position)

	closest := core.V(
		core.ClampF(local.X, -hw, hw),
		core.ClampF(local.Y, -hh, hh),
	)

	inside := closest == local
	if inside {
		// Center is inside the box: push out along the shallowest axis.
		dx := hw - math.Abs(local.X)
		dy := hh - math.Abs(local.Y)
		if dx < dy {
			sx := 1.0
			if local.X < 0 {
				sx = -1
			}
			return contact{a: c, b: b, normal: core.V(-sx, 0), depth: dx + c.Radius}, true
		}
		sy := 1.0
		if local.Y < 0 {
			sy = -1
		}
		return contact{a: c, b: b, normal: core.V(0, -sy), depth: dy + c.Radius}, true
	}

	delta := closest.Sub(local)
	dist := delta.Len()
	if dist >= c.Radius {
		return contact{}, false
	}
	return contact{a: c, b: b, normal: delta.Scale(1 / dist), depth: c.Radius - dist}, true
}
