package suika

import (
	"time"

	"github.com/vovakirdan/tui-suika/internal/config"
	"github.com/vovakirdan/tui-suika/internal/core"
	"github.com/vovakirdan/tui-suika/internal/physics"
)

// Settings are the resolved rule parameters of a match, in world units and
// simulated time.
type Settings struct {
	FieldWidth    float64
	FieldHeight   float64
	WallThickness float64
	RadiusScale   float64
	DangerLineY   float64
	SpawnY        float64

	Material physics.Material
	World    physics.Config
	StepMS   float64

	Grace          time.Duration
	DangerDuration time.Duration
	RestSpeed      float64

	MergeMultiplier int
	MergeVelocity   core.Vec2
	PopCoefficient  float64
	PopRadiusFactor float64

	RandomTiers int
	Cooldown    time.Duration
	MinCooldown time.Duration
	MoveStep    float64
}

// SettingsFromConfig resolves a loaded configuration.
func SettingsFromConfig(cfg config.SuikaConfig) Settings {
	f, p, r, s := cfg.Field, cfg.Physics, cfg.Rules, cfg.Spawn

	world := physics.DefaultConfig()
	world.Gravity = core.V(0, p.Gravity)
	world.GravityScale = p.GravityScale
	world.AirFriction = p.AirFriction
	world.Iterations = p.Iterations
	world.MaxTravel = f.WallThickness / 2
	world.Width = f.Width
	world.Height = f.Height

	return Settings{
		FieldWidth:    f.Width,
		FieldHeight:   f.Height,
		WallThickness: f.WallThickness,
		RadiusScale:   f.RadiusScale,
		DangerLineY:   f.DangerLineY,
		SpawnY:        f.SpawnY,

		Material: physics.Material{
			Friction:    p.Friction,
			Restitution: p.Restitution,
			Slop:        p.Slop,
			Density:     p.Density,
		},
		World:  world,
		StepMS: p.StepMS,

		Grace:          time.Duration(r.GraceMS) * time.Millisecond,
		DangerDuration: time.Duration(r.DangerMS) * time.Millisecond,
		RestSpeed:      r.RestSpeed,

		MergeMultiplier: r.MergeMultiplier,
		MergeVelocity:   core.V(0, r.MergeVelocityY),
		PopCoefficient:  r.PopCoefficient,
		PopRadiusFactor: r.PopRadiusFactor,

		RandomTiers: s.RandomTiers,
		Cooldown:    time.Duration(s.CooldownMS) * time.Millisecond,
		MinCooldown: 100 * time.Millisecond,
		MoveStep:    s.MoveStep,
	}
}

// DefaultSettings resolves the built-in configuration.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultSuikaConfig())
}

// WorldRadius converts a tier radius to world units.
func (s Settings) WorldRadius(t Tier) float64 {
	return t.Radius * s.RadiusScale
}
