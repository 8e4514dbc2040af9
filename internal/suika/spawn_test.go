package suika

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestartArmsTierZero(t *testing.T) {
	m, _ := newTestMatch(t)
	st := m.State()

	assert.Equal(t, 0, st.Armed())
	assert.False(t, st.Dropping())
	assert.GreaterOrEqual(t, st.Next(), 0)
	assert.Less(t, st.Next(), 5)
}

func TestPickNextStaysInLowestTiers(t *testing.T) {
	m, _ := newTestMatch(t)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		n := m.Spawner.PickNext()
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 5)
		seen[n] = true
	}
	assert.Len(t, seen, 5, "every low tier should come up")
}

func TestPickNextClampsToTierCount(t *testing.T) {
	settings := DefaultSettings()
	settings.RandomTiers = 50
	tiers := Tiers{{Radius: 1}, {Radius: 2}}
	m := NewMatch(settings, tiers, newFakeEngine(), rand.New(rand.NewSource(7)), nil)
	m.Reset()

	for i := 0; i < 200; i++ {
		n := m.Spawner.PickNext()
		require.True(t, n == 0 || n == 1, "got %d", n)
	}
}

func TestDropCreatesItemAndCoolsDown(t *testing.T) {
	m, eng := newTestMatch(t)
	st := m.State()
	queued := st.Next()

	require.True(t, m.Spawner.Drop(300))
	assert.True(t, st.Dropping())
	require.Equal(t, 1, st.ItemCount())

	item := st.Items()[0]
	assert.Equal(t, 0, item.Tier)
	body, ok := eng.Body(item.Body)
	require.True(t, ok)
	assert.Equal(t, 300.0, body.Position.X)
	assert.Equal(t, 50.0, body.Position.Y)
	assert.InDelta(t, 16.0, body.Radius, 1e-9)

	// A second drop during the cooldown is rejected
	assert.False(t, m.Spawner.Drop(200))
	assert.Equal(t, 1, st.ItemCount())

	m.Advance(499 * time.Millisecond)
	assert.True(t, st.Dropping())

	m.Advance(time.Millisecond)
	assert.False(t, st.Dropping())
	assert.Equal(t, queued, st.Armed(), "cooldown arms the queued tier")
	assert.True(t, m.Spawner.Drop(200))
}

func TestArmIsNoOpAfterGameOver(t *testing.T) {
	m, _ := newTestMatch(t)
	m.endGame()

	m.Spawner.Arm(4)
	assert.Equal(t, 0, m.State().Armed())
	assert.False(t, m.Spawner.Drop(300))
	assert.Zero(t, m.State().ItemCount())
}

func TestCooldownAfterGameOverDoesNotRearm(t *testing.T) {
	m, _ := newTestMatch(t)
	st := m.State()
	require.True(t, m.Spawner.Drop(300))

	st.setGameOver()
	m.Advance(time.Second)
	assert.True(t, st.Dropping(), "stale cooldown must not re-arm")
}

func TestResetCancelsCooldown(t *testing.T) {
	m, _ := newTestMatch(t)
	require.True(t, m.Spawner.Drop(300))
	require.True(t, m.Spawner.CoolingDown())

	m.Reset()
	assert.False(t, m.Spawner.CoolingDown())
	assert.Zero(t, m.Scheduler().Pending())

	armedAfterReset := m.State().Armed()
	nextAfterReset := m.State().Next()
	m.Advance(time.Second)
	assert.Equal(t, armedAfterReset, m.State().Armed())
	assert.Equal(t, nextAfterReset, m.State().Next())
}

func TestClampX(t *testing.T) {
	m, _ := newTestMatch(t)
	// Tier 0 radius is 16, wall half-thickness 25
	assert.Equal(t, 41.0, m.Spawner.ClampX(-100))
	assert.Equal(t, 559.0, m.Spawner.ClampX(1000))
	assert.Equal(t, 300.0, m.Spawner.ClampX(300))

	m.Spawner.Arm(4) // radius 2.7 * 16 = 43.2
	assert.InDelta(t, 68.2, m.Spawner.ClampX(0), 1e-9)
}

func TestCustomCooldown(t *testing.T) {
	m, _ := newTestMatch(t)
	m.Spawner.Cooldown = func() time.Duration { return 100 * time.Millisecond }

	require.True(t, m.Spawner.Drop(300))
	m.Advance(100 * time.Millisecond)
	assert.False(t, m.State().Dropping())
}
