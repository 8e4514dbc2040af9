package config

import (
	_ "embed"
)

//go:embed defaults/suika.yaml
var defaultSuikaYAML []byte

// DefaultSuikaConfig returns the built-in Suika configuration.
// It mirrors defaults/suika.yaml and is used when the embed cannot be parsed.
func DefaultSuikaConfig() SuikaConfig {
	return SuikaConfig{
		Field: SuikaField{
			Width:         600,
			Height:        800,
			WallThickness: 50,
			RadiusScale:   16,
			DangerLineY:   150,
			SpawnY:        50,
		},
		Physics: SuikaPhysics{
			Friction:     0.2,
			Restitution:  0.15,
			Slop:         0.05,
			Density:      0.001,
			Gravity:      1.0,
			GravityScale: 0.001,
			AirFriction:  0.01,
			Iterations:   6,
			StepMS:       1000.0 / 60.0,
		},
		Rules: SuikaRules{
			GraceMS:         1000,
			DangerMS:        3000,
			RestSpeed:       0.2,
			MergeMultiplier: 2,
			MergeVelocityY:  -2,
			PopCoefficient:  0.05,
			PopRadiusFactor: 3,
		},
		Spawn: SuikaSpawn{
			RandomTiers: 5,
			CooldownMS:  500,
			MoveStep:    10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				CooldownReductionMS: 200,
			},
		},
		Tiers: []SuikaTier{
			{Label: "つぶまる", Radius: 1.0, Color: "#FF3333", Score: 1},
			{Label: "夕凪", Radius: 1.3, Color: "#FF6666", Score: 3},
			{Label: "ユキ", Radius: 1.8, Color: "#9933FF", Score: 6},
			{Label: "シロツバキ", Radius: 2.2, Color: "#FFAA00", Score: 10},
			{Label: "ちょり", Radius: 2.7, Color: "#FF8800", Score: 15},
			{Label: "バルラ", Radius: 3.4, Color: "#FF0000", Score: 21},
			{Label: "Y", Radius: 4.0, Color: "#EEDD00", Score: 28},
			{Label: "ユー", Radius: 4.9, Color: "#FF99CC", Score: 36},
			{Label: "ヴァルキリー", Radius: 5.4, Color: "#FFFF00", Score: 45},
			{Label: "あじゃ", Radius: 6.6, Color: "#99FF99", Score: 55},
			{Label: "盞華", Radius: 7.9, Color: "#008800", Score: 66},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "suika":
		return defaultSuikaYAML
	default:
		return nil
	}
}
