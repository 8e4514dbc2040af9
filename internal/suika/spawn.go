package suika

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-suika/internal/core"
)

// Spawner sequences drops: it holds the armed tier, queues the next one and
// enforces the cooldown between drops.
type Spawner struct {
	state    *State
	factory  *Factory
	sched    *Scheduler
	rng      *rand.Rand
	settings Settings

	// Cooldown returns the delay before re-arming. Defaults to the
	// configured cooldown.
	Cooldown func() time.Duration

	cooldown *Task
}

// NewSpawner creates a spawner. The rng decides every queued tier.
func NewSpawner(state *State, factory *Factory, sched *Scheduler, rng *rand.Rand, settings Settings) *Spawner {
	s := &Spawner{
		state:    state,
		factory:  factory,
		sched:    sched,
		rng:      rng,
		settings: settings,
	}
	s.Cooldown = func() time.Duration { return s.settings.Cooldown }
	return s
}

// PickNext draws a tier uniformly from the lowest RandomTiers tiers.
func (s *Spawner) PickNext() int {
	k := s.settings.RandomTiers
	if n := s.state.Tiers().Count(); k > n {
		k = n
	}
	if k <= 1 {
		return 0
	}
	return s.rng.Intn(k)
}

// Arm makes tier the droppable item and clears the dropping flag.
// No-op after game over.
func (s *Spawner) Arm(tier int) {
	if s.state.GameOver() {
		return
	}
	s.state.armed = tier
	s.state.dropping = false
}

// advance arms the queued tier and queues a fresh one.
func (s *Spawner) advance() {
	if s.state.GameOver() {
		return
	}
	s.Arm(s.state.Next())
	s.state.setNext(s.PickNext())
}

// Restart queues tier 0 and arms it, so every run opens the same way.
func (s *Spawner) Restart() {
	s.Cancel()
	s.state.setNext(0)
	s.advance()
}

// ClampX limits x so an armed item spawned there does not overlap a wall.
func (s *Spawner) ClampX(x float64) float64 {
	r := s.factory.Radius(s.state.Armed())
	half := s.settings.WallThickness / 2
	return core.ClampF(x, half+r, s.settings.FieldWidth-half-r)
}

// Drop releases the armed item at horizontal position x, which the caller
// has already clamped. It reports false when the drop is rejected because
// the game is over or a drop is still cooling down.
func (s *Spawner) Drop(x float64) bool {
	if s.state.GameOver() || s.state.Dropping() {
		return false
	}
	if _, err := s.factory.Create(s.state.Armed(), core.V(x, s.settings.SpawnY), s.sched.Now()); err != nil {
		return false
	}
	s.state.dropping = true

	s.cooldown.Cancel()
	s.cooldown = s.sched.After(s.Cooldown(), s.advance)
	return true
}

// CoolingDown reports whether a re-arm is scheduled.
func (s *Spawner) CoolingDown() bool {
	return s.cooldown.Pending()
}

// Cancel drops any pending re-arm.
func (s *Spawner) Cancel() {
	s.cooldown.Cancel()
	s.cooldown = nil
}
