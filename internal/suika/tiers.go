// Package suika implements a merge-drop game: the player drops round items
// into a walled container, touching items of the same tier merge into the
// next tier, and the run ends when items rest above the danger line for too
// long. Physics is delegated to a physics.Engine; this package holds the
// rules.
package suika

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-suika/internal/config"
	"github.com/vovakirdan/tui-suika/internal/core"
)

// ErrInvalidTiers is returned when a tier table cannot drive a match.
var ErrInvalidTiers = errors.New("invalid tier table")

// Tier describes one item size class.
type Tier struct {
	Label  string
	Radius float64 // Tier units; multiply by the field radius scale for world units
	Hex    string  // Display color, e.g. "#FF3333"
	Score  int
}

// Color returns the tier color for the screen buffer.
func (t Tier) Color() core.Color {
	if t.Hex == "" {
		return core.ColorWhite
	}
	return core.Color(t.Hex)
}

// Tiers is the ordered item table. Index 0 is the smallest item; the last
// index is terminal and never merges.
type Tiers []Tier

// DefaultTiers returns the built-in eleven-tier table.
func DefaultTiers() Tiers {
	t, _ := TiersFromConfig(config.DefaultSuikaConfig().Tiers)
	return t
}

// TiersFromConfig converts and validates a configured table.
func TiersFromConfig(src []config.SuikaTier) (Tiers, error) {
	t := make(Tiers, 0, len(src))
	for _, s := range src {
		t = append(t, Tier{Label: s.Label, Radius: s.Radius, Hex: s.Color, Score: s.Score})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Count returns the number of tiers.
func (t Tiers) Count() int { return len(t) }

// Terminal returns the index of the largest tier.
func (t Tiers) Terminal() int { return len(t) - 1 }

// Valid reports whether i indexes the table.
func (t Tiers) Valid(i int) bool { return i >= 0 && i < len(t) }

// At returns tier i, or the zero Tier when i is out of range.
func (t Tiers) At(i int) Tier {
	if !t.Valid(i) {
		return Tier{}
	}
	return t[i]
}

// IsTerminal reports whether i is the last tier.
func (t Tiers) IsTerminal(i int) bool { return i == t.Terminal() }

// Next returns the tier an i-tier merge produces.
// ok is false for the terminal tier and for invalid indexes.
func (t Tiers) Next(i int) (next int, ok bool) {
	if !t.Valid(i) || t.IsTerminal(i) {
		return 0, false
	}
	return i + 1, true
}

// Validate checks the table is non-empty, radii strictly increase, and
// scores are non-negative.
func (t Tiers) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidTiers)
	}
	for i, tier := range t {
		if tier.Radius <= 0 {
			return fmt.Errorf("%w: tier %d radius %v", ErrInvalidTiers, i, tier.Radius)
		}
		if tier.Score < 0 {
			return fmt.Errorf("%w: tier %d score %d", ErrInvalidTiers, i, tier.Score)
		}
		if i > 0 && tier.Radius <= t[i-1].Radius {
			return fmt.Errorf("%w: tier %d radius %v not above tier %d", ErrInvalidTiers, i, tier.Radius, i-1)
		}
	}
	return nil
}
