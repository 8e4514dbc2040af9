package suika

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-suika/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // Ignore any user config
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 30, TickRate: 60})
	return g
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	input := core.NewInputFrame()
	for i := 0; i < 900; i++ {
		input.Clear()
		switch {
		case i%45 == 0:
			input.Set(core.ActionDrop)
		case i%45 < 10:
			input.Set(core.ActionLeft)
		case i%90 > 60:
			input.Set(core.ActionRight)
		}
		g1.Step(input)
		g2.Step(input)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", snap1, snap2)
	}
	if snap1.ItemCount == 0 {
		t.Error("Expected dropped items in the field")
	}
}

func TestResetStartsFresh(t *testing.T) {
	g := newTestGame(t, 1)
	st := g.Match().State()

	if st.Armed() != 0 {
		t.Errorf("Armed = %d, expected tier 0", st.Armed())
	}
	if st.Next() < 0 || st.Next() >= 5 {
		t.Errorf("Next = %d, expected one of the lowest 5 tiers", st.Next())
	}
	if g.GuideX() != 300 {
		t.Errorf("GuideX = %v, expected field center", g.GuideX())
	}
	if got := len(g.Match().Engine().Bodies()); got != 3 {
		t.Errorf("Expected 3 container walls, got %d bodies", got)
	}
}

func TestGuideMovement(t *testing.T) {
	g := newTestGame(t, 1)

	input := core.NewInputFrame()
	input.Set(core.ActionRight)
	g.Step(input)
	if g.GuideX() != 310 {
		t.Errorf("GuideX = %v, expected 310 after one step right", g.GuideX())
	}

	for i := 0; i < 100; i++ {
		g.Step(input)
	}
	if g.GuideX() != 559 {
		t.Errorf("GuideX = %v, expected clamp at 559", g.GuideX())
	}
}

func TestPointerMovesGuide(t *testing.T) {
	g := newTestGame(t, 1)
	l := g.layout
	if !l.ok {
		t.Fatal("80x30 layout should fit")
	}

	input := core.NewInputFrame()
	input.SetPointer(l.x0+l.cols/4, l.y0)
	g.Step(input)

	want := g.Match().Spawner.ClampX(l.worldX(l.x0 + l.cols/4))
	if g.GuideX() != want {
		t.Errorf("GuideX = %v, expected %v", g.GuideX(), want)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := computeLayout(80, 30, DefaultSettings())
	if !l.ok {
		t.Fatal("layout should fit 80x30")
	}
	if l.unitY != 2*l.unitX {
		t.Errorf("unitY = %v, expected twice unitX %v", l.unitY, l.unitX)
	}
	for sx := l.x0; sx < l.x0+l.cols; sx++ {
		if cx, _ := l.cell(l.worldX(sx), 0); cx != sx {
			t.Fatalf("column %d maps back to %d", sx, cx)
		}
	}
	if small := computeLayout(30, 10, DefaultSettings()); small.ok {
		t.Error("30x10 should be too small")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, 1)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("Expected paused after pause action")
	}

	tick := g.tick
	clock := g.Match().Scheduler().Now()
	g.Step(core.NewInputFrame())
	if g.tick != tick || g.Match().Scheduler().Now() != clock {
		t.Error("Paused game should not advance")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("Expected unpaused after second pause action")
	}
}

func TestDropThroughStep(t *testing.T) {
	g := newTestGame(t, 7)

	drop := core.NewInputFrame()
	drop.Set(core.ActionDrop)
	g.Step(drop)

	st := g.Match().State()
	if st.ItemCount() != 1 || !st.Dropping() {
		t.Fatalf("Expected one dropping item, got %d items dropping=%v", st.ItemCount(), st.Dropping())
	}

	// Held drop during the cooldown is ignored
	g.Step(drop)
	if st.ItemCount() != 1 {
		t.Errorf("Drop during cooldown should be rejected, got %d items", st.ItemCount())
	}

	idle := core.NewInputFrame()
	for i := 0; i < 30; i++ {
		g.Step(idle)
	}
	if st.Dropping() {
		t.Error("Cooldown should have re-armed after 500ms")
	}

	sum := g.RunSummary()
	if sum.Drops != 1 || sum.Duration <= 0 {
		t.Errorf("Unexpected summary %+v", sum)
	}
}

func TestHighScore(t *testing.T) {
	g := newTestGame(t, 1)
	g.SetHighScore(40)
	if g.HighScore() != 40 {
		t.Errorf("HighScore = %d, expected stored 40", g.HighScore())
	}
	g.Match().State().Ledger().Add(55)
	if g.HighScore() != 55 {
		t.Errorf("HighScore = %d, expected current run 55", g.HighScore())
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "SUIKA") || !strings.Contains(out, "Score") {
		t.Errorf("HUD missing from render:\n%s", out)
	}
	if !strings.ContainsRune(out, GuideChar) {
		t.Error("Armed item guide should be drawn")
	}

	g.Match().endGame()
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("Expected game over overlay")
	}

	small := core.NewScreen(30, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("Expected too-small message")
	}
}

func TestResize(t *testing.T) {
	g := newTestGame(t, 1)
	g.Match().State().Ledger().Add(10)

	g.Resize(120, 40)
	if g.layout.screenW != 120 || !g.layout.ok {
		t.Errorf("Resize should recompute layout, got %+v", g.layout)
	}
	if g.State().Score != 10 {
		t.Error("Resize should keep the run")
	}
}

func TestSetDifficulty(t *testing.T) {
	g := newTestGame(t, 1)
	if g.Match().Settings().DangerDuration != 3*time.Second {
		t.Fatalf("default danger duration = %v", g.Match().Settings().DangerDuration)
	}

	g.SetDifficulty("hard")
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 30})
	s := g.Match().Settings()
	if s.DangerDuration != 2*time.Second || s.Cooldown != 350*time.Millisecond {
		t.Errorf("hard preset not applied: danger %v cooldown %v", s.DangerDuration, s.Cooldown)
	}
	if !g.difficulty.IsEnabled() {
		t.Error("hard preset should enable progression")
	}

	g.SetDifficulty("bogus")
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 30})
	if g.Match().Settings().DangerDuration != 3*time.Second {
		t.Error("unknown preset should leave the config untouched")
	}
}
