package suika

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-suika/internal/config"
	"github.com/vovakirdan/tui-suika/internal/core"
	"github.com/vovakirdan/tui-suika/internal/physics"
	"github.com/vovakirdan/tui-suika/internal/registry"
)

// maxSubsteps caps physics catch-up per tick.
const maxSubsteps = 5

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements registry.Game for the merge-drop game.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.SuikaConfig
	settings   Settings
	tiers      Tiers
	difficulty *config.DifficultyManager
	preset     config.DifficultyPreset

	world *physics.World
	match *Match

	guideX float64
	accMS  float64
	tick   uint64
	paused bool
	best   int
	pulses []*pulse

	layout layout
}

// New creates a new game instance using the preset set via CLI.
func New() *Game {
	return &Game{preset: difficultyPreset}
}

// SetDifficulty overrides the preset for this instance. It applies on
// the next Reset.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "suika"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Suika"
}

// Reset loads configuration and starts a fresh run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	log := currentLogger()

	cfg, err := config.LoadSuika(configPath)
	if err != nil {
		log.Warn("falling back to default config", "path", configPath, "error", err)
		cfg = config.DefaultSuikaConfig()
	}
	if g.preset != "" {
		config.ApplySuikaPreset(&cfg, g.preset)
	}
	tiers, err := TiersFromConfig(cfg.Tiers)
	if err != nil {
		log.Warn("falling back to default tiers", "error", err)
		tiers = DefaultTiers()
	}

	g.cfg = cfg
	g.settings = SettingsFromConfig(cfg)
	g.tiers = tiers
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.world = physics.NewWorld(g.settings.World)
	g.match = NewMatch(g.settings, g.tiers, g.world, rand.New(rand.NewSource(runtime.Seed)), log)
	g.match.Spawner.Cooldown = g.cooldown
	g.match.Reset()

	g.guideX = g.settings.FieldWidth / 2
	g.accMS = 0
	g.tick = 0
	g.paused = false
	g.pulses = nil
	g.layout = computeLayout(runtime.ScreenW, runtime.ScreenH, g.settings)

	log.Info("run started",
		"seed", runtime.Seed,
		"preset", string(g.preset),
		"danger_ms", cfg.Rules.DangerMS,
		"cooldown_ms", cfg.Spawn.CooldownMS,
	)
}

// cooldown applies difficulty progression to the drop cooldown.
func (g *Game) cooldown() time.Duration {
	return g.difficulty.Cooldown(g.settings.Cooldown, g.settings.MinCooldown, g.match.State().Score(), int(g.tick))
}

// Resize updates the layout without restarting the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.layout = computeLayout(w, h, g.settings)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	st := g.match.State()

	if in.Has(core.ActionPause) && !st.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickDuration()
	g.pulses = updatePulses(g.pulses, float32(dt.Seconds()))

	if st.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.match.Advance(dt)

	g.applyInput(in)

	g.accMS += float64(dt) / float64(time.Millisecond)
	for n := 0; g.accMS >= g.settings.StepMS && n < maxSubsteps; n++ {
		g.match.StepPhysics()
		g.accMS -= g.settings.StepMS
	}
	if g.accMS > g.settings.StepMS {
		g.accMS = 0 // Drop time we could not catch up on
	}

	for _, ev := range g.match.DrainEvents() {
		g.pulses = append(g.pulses, newPulse(ev))
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) applyInput(in core.InputFrame) {
	sp := g.match.Spawner

	if in.Has(core.ActionLeft) {
		g.guideX -= g.settings.MoveStep
	}
	if in.Has(core.ActionRight) {
		g.guideX += g.settings.MoveStep
	}
	if in.Pointer && g.layout.ok {
		g.guideX = g.layout.worldX(in.PointerX)
	}
	g.guideX = sp.ClampX(g.guideX)

	if in.Has(core.ActionDrop) {
		g.match.Drop(g.guideX)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.match.State().Score(),
		GameOver: g.match.State().GameOver(),
		Paused:   g.paused,
	}
}

// SetHighScore sets the stored best score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.best = score
}

// HighScore returns the best of the stored score and the current run.
func (g *Game) HighScore() int {
	if g.match != nil && g.match.State().Score() > g.best {
		return g.match.State().Score()
	}
	return g.best
}

// RunSummary reports statistics for the current run.
func (g *Game) RunSummary() core.RunSummary {
	if g.match == nil {
		return core.RunSummary{}
	}
	return core.RunSummary{
		Score:    g.match.State().Score(),
		MaxTier:  g.match.MaxTier(),
		Merges:   g.match.Merges(),
		Drops:    g.match.Drops(),
		Duration: g.match.Elapsed(),
	}
}

// Match exposes the rule layer.
func (g *Game) Match() *Match {
	return g.match
}

// Tiers returns the active tier table.
func (g *Game) Tiers() Tiers {
	return g.tiers
}

// GuideX returns the horizontal world position of the drop guide.
func (g *Game) GuideX() float64 {
	return g.guideX
}

// Register the game with the registry
func init() {
	registry.Register("suika", "Drop and merge items; don't let the pile cross the line", func() registry.Game {
		return New()
	})
}
