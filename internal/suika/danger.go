package suika

import (
	"time"

	"github.com/vovakirdan/tui-suika/internal/physics"
)

// DangerMonitor watches for items resting above the danger line.
type DangerMonitor struct {
	engine   physics.Engine
	state    *State
	settings Settings
}

// NewDangerMonitor creates a monitor.
func NewDangerMonitor(engine physics.Engine, state *State, settings Settings) *DangerMonitor {
	return &DangerMonitor{engine: engine, state: state, settings: settings}
}

// Scan updates every live item's danger timer at time now. It reports
// whether any item has been in danger longer than the danger duration,
// and the largest danger progress in [0, 1] for display.
//
// Items younger than the grace period are skipped and keep their timer.
func (d *DangerMonitor) Scan(now time.Duration) (triggered bool, progress float64) {
	if d.state.GameOver() {
		return false, 0
	}

	for _, item := range d.state.Items() {
		if item.Removed {
			continue
		}
		body, ok := d.engine.Body(item.Body)
		if !ok || body.Static {
			continue
		}
		if item.Age(now) < d.settings.Grace {
			continue
		}

		top := body.Position.Y - body.Radius
		if top >= d.settings.DangerLineY || body.Speed() >= d.settings.RestSpeed {
			item.DangerSince = nil
			continue
		}

		if item.DangerSince == nil {
			since := now
			item.DangerSince = &since
			continue
		}
		elapsed := now - *item.DangerSince
		if elapsed > d.settings.DangerDuration {
			triggered = true
		}
		if d.settings.DangerDuration > 0 {
			if p := float64(elapsed) / float64(d.settings.DangerDuration); p > progress {
				progress = p
			}
		}
	}

	if progress > 1 {
		progress = 1
	}
	return triggered, progress
}
