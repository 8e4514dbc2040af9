package suika

import "math"

// Snapshot captures the game state for determinism testing.
// Positions are stored in thousandths of a world unit.
type Snapshot struct {
	Tick     uint64
	ClockMS  int64
	Score    int
	Armed    int
	Next     int
	Dropping bool
	GameOver bool
	GuideX   int

	ItemCount int
	// Each item is 4 ints: Tier, X, Y, InDanger
	ItemData []int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	st := g.match.State()
	items := st.Items()

	data := make([]int, 0, len(items)*4)
	for _, it := range items {
		x, y := 0, 0
		if b, ok := g.match.Engine().Body(it.Body); ok {
			x = fixed(b.Position.X)
			y = fixed(b.Position.Y)
		}
		danger := 0
		if it.InDanger() {
			danger = 1
		}
		data = append(data, it.Tier, x, y, danger)
	}

	return Snapshot{
		Tick:      g.tick,
		ClockMS:   g.match.Scheduler().Now().Milliseconds(),
		Score:     st.Score(),
		Armed:     st.Armed(),
		Next:      st.Next(),
		Dropping:  st.Dropping(),
		GameOver:  st.GameOver(),
		GuideX:    fixed(g.guideX),
		ItemCount: len(items),
		ItemData:  data,
	}
}

func fixed(v float64) int {
	return int(math.Round(v * 1000))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.ClockMS)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Armed)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Next)      //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Dropping) //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.GameOver) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.GuideX)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ItemCount) //#nosec G115 -- hash computation

	for _, v := range snap.ItemData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
