package suika

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-suika/internal/core"
	"github.com/vovakirdan/tui-suika/internal/physics"
)

func newWorldMatch(t *testing.T) (*Match, *physics.World) {
	t.Helper()
	s := DefaultSettings()
	w := physics.NewWorld(s.World)
	m := NewMatch(s, DefaultTiers(), w, rand.New(rand.NewSource(3)), nil)
	m.Reset()
	return m, w
}

func TestContainerGeometry(t *testing.T) {
	_, w := newWorldMatch(t)
	walls := w.Bodies()
	require.Len(t, walls, 3)

	floor, left, right := walls[0], walls[1], walls[2]
	assert.Equal(t, core.V(300, 800), floor.Position)
	assert.Equal(t, 600.0, floor.Width)
	assert.Equal(t, 50.0, floor.Height)
	assert.Equal(t, core.V(0, 400), left.Position)
	assert.Equal(t, core.V(600, 400), right.Position)
	for _, b := range walls {
		assert.True(t, b.Static)
		assert.Equal(t, LabelWall, b.Label)
	}
}

func TestItemsMergeInWorld(t *testing.T) {
	m, w := newWorldMatch(t)
	spawnItem(t, m, 0, 300, 759)
	spawnItem(t, m, 0, 300, 700)

	for i := 0; i < 120; i++ {
		m.StepPhysics()
	}

	st := m.State()
	assert.Equal(t, 6, st.Score())
	require.Equal(t, 1, st.ItemCount())
	assert.Equal(t, 1, st.Items()[0].Tier)
	assert.Len(t, w.Bodies(), 4, "three walls and the merged item")
	assert.NotEmpty(t, m.DrainEvents())
}

func TestDroppedItemSettles(t *testing.T) {
	m, w := newWorldMatch(t)
	require.True(t, m.Drop(300))

	for i := 0; i < 300; i++ {
		m.Advance(DefaultSettings().Cooldown / 30)
		m.StepPhysics()
	}

	item := m.State().Items()[0]
	body, ok := w.Body(item.Body)
	require.True(t, ok)
	assert.InDelta(t, 775-16, body.Position.Y, 1.0)
	assert.Less(t, body.Speed(), 0.2)
	assert.False(t, m.State().GameOver())
	assert.Equal(t, 1, m.Drops())
}

func TestMatchDropClamps(t *testing.T) {
	m, w := newWorldMatch(t)
	require.True(t, m.Drop(-500))

	item := m.State().Items()[0]
	body, _ := w.Body(item.Body)
	assert.Equal(t, 41.0, body.Position.X)
}

func TestElapsedFreezesAtGameOver(t *testing.T) {
	m, _ := newWorldMatch(t)
	m.Advance(DefaultSettings().Grace)
	start := m.Elapsed()
	m.endGame()
	m.Advance(DefaultSettings().Grace)
	assert.Equal(t, start, m.Elapsed())
}

func TestMergePopKeepsItemsInContainer(t *testing.T) {
	m, w := newWorldMatch(t)
	s := m.Settings()
	tiers := DefaultTiers()
	restY := func(tier int) float64 {
		return s.FieldHeight - s.WallThickness/2 - s.WorldRadius(tiers.At(tier))
	}

	spawnItem(t, m, 3, 266, restY(3))
	spawnItem(t, m, 3, 334, restY(3))
	spawnItem(t, m, 0, 210, restY(0))
	spawnItem(t, m, 0, 390, restY(0))
	spawnItem(t, m, 1, 120, restY(1))
	spawnItem(t, m, 1, 480, restY(1))

	for i := 0; i < 120; i++ {
		m.StepPhysics()
	}

	events := m.DrainEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, 3, events[0].From)
	assert.Equal(t, 4, events[0].To)
	assert.Zero(t, m.Escaped())

	items := m.State().Items()
	require.Len(t, items, 5)
	for _, it := range items {
		body, ok := w.Body(it.Body)
		require.True(t, ok)
		assert.True(t, body.Position.X >= 0 && body.Position.X <= s.FieldWidth,
			"tier %d left the side walls at %+v", it.Tier, body.Position)
		assert.True(t, body.Position.Y >= 0 && body.Position.Y <= s.FieldHeight,
			"tier %d left the floor at %+v", it.Tier, body.Position)
	}
}

func TestEscapedItemsAreDestroyed(t *testing.T) {
	m, eng := newTestMatch(t)
	inside := spawnItem(t, m, 0, 300, 700)
	left := spawnItem(t, m, 0, 300, 700)
	below := spawnItem(t, m, 1, 300, 700)
	above := spawnItem(t, m, 0, 300, 700)

	bl, _ := eng.Body(left.Body)
	bl.Position = core.V(-5, 400)
	bb, _ := eng.Body(below.Body)
	bb.Position = core.V(300, 900)
	ba, _ := eng.Body(above.Body)
	ba.Position = core.V(300, -200) // the top is open

	m.StepPhysics()

	assert.Equal(t, 2, m.Escaped())
	assert.Equal(t, 2, m.State().ItemCount())
	for _, gone := range []*ItemMeta{left, below} {
		assert.True(t, gone.Removed)
		_, ok := eng.Body(gone.Body)
		assert.False(t, ok, "escaped bodies leave the engine")
		_, ok = m.State().Item(gone.ID)
		assert.False(t, ok, "escaped records are swept")
	}
	assert.False(t, inside.Removed)
	assert.False(t, above.Removed)
	assert.Zero(t, m.State().Score(), "escapes score nothing")
}
