package suika

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-suika/internal/core"
)

// Pop ring animation timing, in seconds of simulated time.
const (
	pulseSeconds = 0.35
	maxPulses    = 8
)

// pulse is the expanding ring drawn where a merge happened.
type pulse struct {
	center core.Vec2
	radius float64 // World radius of the merged item
	tier   int
	tween  *gween.Tween
	value  float32 // 0 → 1 over the animation
	done   bool
}

func newPulse(ev MergeEvent) *pulse {
	return &pulse{
		center: ev.Position,
		radius: ev.Radius,
		tier:   ev.To,
		tween:  gween.New(0, 1, pulseSeconds, ease.OutCubic),
	}
}

// update advances the animation by dt seconds.
func (p *pulse) update(dt float32) {
	if p.done {
		return
	}
	p.value, p.done = p.tween.Update(dt)
}

// ringRadius returns the current ring radius in world units.
func (p *pulse) ringRadius(reach float64) float64 {
	return p.radius + float64(p.value)*(reach-p.radius)
}

// updatePulses advances and prunes the active pulses.
func updatePulses(pulses []*pulse, dt float32) []*pulse {
	live := pulses[:0]
	for _, p := range pulses {
		p.update(dt)
		if !p.done {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(pulses); i++ {
		pulses[i] = nil
	}
	if len(live) > maxPulses {
		live = live[len(live)-maxPulses:]
	}
	return live
}
