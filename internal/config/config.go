// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// SuikaConfig contains all configuration for the Suika merge game.
type SuikaConfig struct {
	Field      SuikaField       `yaml:"field"`
	Physics    SuikaPhysics     `yaml:"physics"`
	Rules      SuikaRules       `yaml:"rules"`
	Spawn      SuikaSpawn       `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Tiers      []SuikaTier      `yaml:"tiers"`
}

// SuikaField describes the container geometry in world units (pixels of the
// original 600x800 canvas). Y grows downward.
type SuikaField struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	WallThickness float64 `yaml:"wall_thickness"`
	RadiusScale   float64 `yaml:"radius_scale"`  // World units per tier radius unit
	DangerLineY   float64 `yaml:"danger_line_y"` // Items resting above this line are in danger
	SpawnY        float64 `yaml:"spawn_y"`       // Height at which dropped items appear
}

// SuikaPhysics defines material and world parameters handed to the engine.
type SuikaPhysics struct {
	Friction     float64 `yaml:"friction"`
	Restitution  float64 `yaml:"restitution"`
	Slop         float64 `yaml:"slop"`
	Density      float64 `yaml:"density"`
	Gravity      float64 `yaml:"gravity"`
	GravityScale float64 `yaml:"gravity_scale"`
	AirFriction  float64 `yaml:"air_friction"`
	Iterations   int     `yaml:"iterations"`
	StepMS       float64 `yaml:"step_ms"` // Fixed physics step length
}

// SuikaRules defines the merge and game-over tunables.
type SuikaRules struct {
	GraceMS         int     `yaml:"grace_ms"`          // Age before an item can be in danger
	DangerMS        int     `yaml:"danger_ms"`         // Continuous danger time that ends the run
	RestSpeed       float64 `yaml:"rest_speed"`        // Below this speed an item counts as resting
	MergeMultiplier int     `yaml:"merge_multiplier"`  // Points = score(tier+1) * multiplier
	MergeVelocityY  float64 `yaml:"merge_velocity_y"`  // Vertical velocity of a merged item
	PopCoefficient  float64 `yaml:"pop_coefficient"`   // Pop force = coefficient * new mass
	PopRadiusFactor float64 `yaml:"pop_radius_factor"` // Pop reach = factor * new radius
}

// SuikaSpawn defines drop sequencing parameters.
type SuikaSpawn struct {
	RandomTiers int     `yaml:"random_tiers"` // Next tier is drawn from the lowest N tiers
	CooldownMS  int     `yaml:"cooldown_ms"`  // Delay after a drop before re-arming
	MoveStep    float64 `yaml:"move_step"`    // Guide movement per key press, world units
}

// SuikaTier is one entry of the tier table.
type SuikaTier struct {
	Label  string  `yaml:"label"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	Score  int     `yaml:"score"`
}

// Validate checks that the configuration can drive a match.
func (c SuikaConfig) Validate() error {
	f := c.Field
	if f.Width <= f.WallThickness || f.Height <= f.WallThickness {
		return fmt.Errorf("%w: field %vx%v too small for wall thickness %v", ErrInvalidConfig, f.Width, f.Height, f.WallThickness)
	}
	if f.RadiusScale <= 0 {
		return fmt.Errorf("%w: radius_scale must be positive", ErrInvalidConfig)
	}
	if c.Physics.StepMS <= 0 {
		return fmt.Errorf("%w: step_ms must be positive", ErrInvalidConfig)
	}
	if c.Physics.Density <= 0 {
		return fmt.Errorf("%w: density must be positive", ErrInvalidConfig)
	}
	if c.Rules.GraceMS < 0 || c.Rules.DangerMS <= 0 {
		return fmt.Errorf("%w: grace_ms must be >= 0 and danger_ms > 0", ErrInvalidConfig)
	}
	if c.Spawn.RandomTiers <= 0 {
		return fmt.Errorf("%w: random_tiers must be positive", ErrInvalidConfig)
	}
	if c.Spawn.CooldownMS < 0 {
		return fmt.Errorf("%w: cooldown_ms must not be negative", ErrInvalidConfig)
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: tier table is empty", ErrInvalidConfig)
	}
	for i, t := range c.Tiers {
		if t.Radius <= 0 {
			return fmt.Errorf("%w: tier %d radius must be positive", ErrInvalidConfig, i)
		}
		if t.Score < 0 {
			return fmt.Errorf("%w: tier %d score must not be negative", ErrInvalidConfig, i)
		}
		if i > 0 && t.Radius <= c.Tiers[i-1].Radius {
			return fmt.Errorf("%w: tier %d radius %v does not exceed tier %d", ErrInvalidConfig, i, t.Radius, i-1)
		}
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	CooldownReductionMS int `yaml:"cooldown_reduction_ms"` // Drop cooldown shaved off at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
