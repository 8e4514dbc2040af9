package suika

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-suika/internal/physics"
)

// Match wires the rule components to one physics engine and scheduler.
// All callbacks run synchronously on the caller's goroutine.
type Match struct {
	settings Settings
	engine   physics.Engine
	sched    *Scheduler
	state    *State
	logger   *log.Logger

	Factory *Factory
	Spawner *Spawner
	Merger  *Merger
	Danger  *DangerMonitor

	events         []MergeEvent
	dangerProgress float64
	startedAt      time.Duration
	endedAt        time.Duration

	merges  int
	drops   int
	maxTier int
	escaped int
}

// NewMatch builds a match and subscribes it to the engine. Call Reset
// before the first step.
func NewMatch(settings Settings, tiers Tiers, engine physics.Engine, rng *rand.Rand, logger *log.Logger) *Match {
	if logger == nil {
		logger = discardLogger()
	}
	state := NewState(tiers)
	sched := NewScheduler()
	factory := NewFactory(engine, state, settings)

	m := &Match{
		settings: settings,
		engine:   engine,
		sched:    sched,
		state:    state,
		logger:   logger,
		Factory:  factory,
		Spawner:  NewSpawner(state, factory, sched, rng, settings),
		Merger:   NewMerger(engine, state, factory, sched, settings),
		Danger:   NewDangerMonitor(engine, state, settings),
	}

	engine.OnContactStart(m.handleContacts)
	engine.OnStepComplete(m.handleStep)
	return m
}

// Reset starts a new run: pending cooldowns are cancelled, the world is
// cleared and the container rebuilt, score and items are emptied, and
// tier 0 is armed. The engine is left running.
func (m *Match) Reset() {
	m.sched.CancelAll()
	m.Spawner.Cancel()
	m.engine.Stop()
	m.engine.Clear()

	m.state.Reset()
	m.Factory.BuildContainer()
	m.Spawner.Restart()

	m.events = nil
	m.dangerProgress = 0
	m.startedAt = m.sched.Now()
	m.endedAt = 0
	m.merges = 0
	m.drops = 0
	m.maxTier = 0
	m.escaped = 0

	m.engine.Run()
	m.logger.Debug("match reset", "armed", m.state.Armed(), "next", m.state.Next())
}

// State returns the rule state.
func (m *Match) State() *State { return m.state }

// Scheduler returns the match clock.
func (m *Match) Scheduler() *Scheduler { return m.sched }

// Engine returns the physics engine.
func (m *Match) Engine() physics.Engine { return m.engine }

// Settings returns the resolved rule parameters.
func (m *Match) Settings() Settings { return m.settings }

// DangerProgress returns the most advanced danger timer from the last
// scan, in [0, 1].
func (m *Match) DangerProgress() float64 { return m.dangerProgress }

// Advance moves the clock and fires due tasks such as the drop cooldown.
func (m *Match) Advance(d time.Duration) {
	m.sched.Advance(d)
}

// StepPhysics advances the engine by one fixed step. Contact and step
// handlers run inside.
func (m *Match) StepPhysics() {
	m.engine.Step(m.settings.StepMS)
}

// Drop releases the armed item at x after clamping it.
func (m *Match) Drop(x float64) bool {
	tier := m.state.Armed()
	if !m.Spawner.Drop(m.Spawner.ClampX(x)) {
		return false
	}
	m.drops++
	if tier > m.maxTier {
		m.maxTier = tier
	}
	m.logger.Debug("drop", "tier", tier, "x", x)
	return true
}

// DrainEvents returns and clears merges recorded since the last call.
func (m *Match) DrainEvents() []MergeEvent {
	ev := m.events
	m.events = nil
	return ev
}

func (m *Match) handleContacts(pairs []physics.Pair) {
	if m.state.GameOver() {
		return
	}
	events := m.Merger.ResolveBatch(pairs)
	m.state.sweep()

	for _, ev := range events {
		m.merges++
		if ev.To > m.maxTier {
			m.maxTier = ev.To
		}
		m.logger.Debug("merge", "from", ev.From, "to", ev.To, "points", ev.Points, "pushed", ev.Pushed)
	}
	m.events = append(m.events, events...)
}

func (m *Match) handleStep() {
	if m.state.GameOver() {
		return
	}
	m.retireEscaped()
	triggered, progress := m.Danger.Scan(m.sched.Now())
	m.dangerProgress = progress
	if triggered {
		m.endGame()
	}
}

// retireEscaped destroys items whose centre has left the container: past
// either wall or below the floor. The top is open, so items above it stay.
func (m *Match) retireEscaped() {
	s := m.settings
	gone := 0
	for _, item := range m.state.Items() {
		if item.Removed {
			continue
		}
		body, ok := m.engine.Body(item.Body)
		if !ok {
			continue
		}
		p := body.Position
		if p.X >= 0 && p.X <= s.FieldWidth && p.Y <= s.FieldHeight {
			continue
		}
		m.Factory.Destroy(item.ID)
		gone++
		m.logger.Debug("item escaped", "tier", item.Tier, "x", p.X, "y", p.Y)
	}
	if gone > 0 {
		m.escaped += gone
		m.state.sweep()
	}
}

// endGame is the one-way transition: the engine stops, the cooldown is
// dropped and items stay frozen where they are.
func (m *Match) endGame() {
	m.state.setGameOver()
	m.engine.Stop()
	m.Spawner.Cancel()
	m.endedAt = m.sched.Now()
	m.logger.Info("game over",
		"score", m.state.Score(),
		"merges", m.merges,
		"drops", m.drops,
		"max_tier", m.maxTier,
	)
}

// Merges returns the number of merges this run.
func (m *Match) Merges() int { return m.merges }

// Drops returns the number of accepted drops this run.
func (m *Match) Drops() int { return m.drops }

// Escaped returns how many items left the container and were destroyed.
func (m *Match) Escaped() int { return m.escaped }

// MaxTier returns the highest tier produced by a merge or drop this run.
func (m *Match) MaxTier() int { return m.maxTier }

// Elapsed returns the simulated run time, frozen at game over.
func (m *Match) Elapsed() time.Duration {
	if m.state.GameOver() {
		return m.endedAt - m.startedAt
	}
	return m.sched.Now() - m.startedAt
}
