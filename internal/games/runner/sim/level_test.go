package sim

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/tap-ninja/internal/config"
)

func testLevel() config.RunnerLevel {
	return config.DefaultRunnerConfig().Level
}

// scriptedRand replays a fixed sequence of values, cycling at the end.
type scriptedRand struct {
	vals  []float64
	calls int
}

func (s *scriptedRand) Float64() float64 {
	v := s.vals[s.calls%len(s.vals)]
	s.calls++
	return v
}

func TestInitialFrontier(t *testing.T) {
	cfg := testLevel()
	g := NewGenerator(cfg, NewRand(7))
	ps := g.Platforms()

	if len(ps) != cfg.InitialCount {
		t.Fatalf("initial platforms = %d, expected %d", len(ps), cfg.InitialCount)
	}
	first := ps[0]
	if first.Rect != (Rect{X: 0, Y: 350, W: 200, H: 30}) || first.ID != 0 {
		t.Errorf("first platform = %+v", first)
	}

	for i := 1; i < len(ps); i++ {
		prev, p := ps[i-1], ps[i]
		if p.ID != prev.ID+1 {
			t.Errorf("platform %d: id %d does not follow %d", i, p.ID, prev.ID)
		}
		gap := p.X - prev.Right()
		if gap < cfg.MinGap || gap > cfg.MaxGap {
			t.Errorf("platform %d: gap %v outside [%v, %v]", i, gap, cfg.MinGap, cfg.MaxGap)
		}
		if p.W < cfg.MinWidth || p.W > cfg.MaxWidth || p.H != cfg.PlatformHeight {
			t.Errorf("platform %d: size %vx%v out of range", i, p.W, p.H)
		}
		if p.Y < cfg.MinY || p.Y > cfg.MaxY {
			t.Errorf("platform %d: y %v outside band", i, p.Y)
		}
		if math.Abs(p.Y-prev.Y) > cfg.MaxRise {
			t.Errorf("platform %d: rise %v exceeds %v", i, p.Y-prev.Y, cfg.MaxRise)
		}
	}
}

func TestCoinPlacement(t *testing.T) {
	cfg := testLevel()
	cfg.CoinChance = 1
	g := NewGenerator(cfg, NewRand(3))

	ps, coins := g.Platforms(), g.Coins()
	if want := cfg.InitialCount - cfg.CoinFirstIndex; len(coins) != want {
		t.Fatalf("coins = %d, expected one per platform from index %d (%d)", len(coins), cfg.CoinFirstIndex, want)
	}
	for i, c := range coins {
		p := ps[i+cfg.CoinFirstIndex]
		if c.ID != i {
			t.Errorf("coin %d has id %d", i, c.ID)
		}
		if c.X+c.W/2 != p.X+p.W/2 {
			t.Errorf("coin %d not centred on platform %d", i, p.ID)
		}
		if c.Y != p.Y-cfg.CoinLift || c.W != cfg.CoinSize || c.H != cfg.CoinSize {
			t.Errorf("coin %d misplaced: %+v over %+v", i, c.Rect, p.Rect)
		}
	}
}

func TestScriptedExtremes(t *testing.T) {
	cfg := testLevel()
	cfg.InitialCount = 6

	low := NewGenerator(cfg, &scriptedRand{vals: []float64{0}})
	wantY := []float64{350, 320, 290, 260, 250, 250}
	for i, p := range low.Platforms() {
		if p.Y != wantY[i] {
			t.Errorf("low draw platform %d: y = %v, expected %v", i, p.Y, wantY[i])
		}
		if i > 0 && (p.W != cfg.MinWidth || p.X-low.Platforms()[i-1].Right() != cfg.MinGap) {
			t.Errorf("low draw platform %d should use minimum gap and width: %+v", i, p.Rect)
		}
	}
	// A zero draw is below the coin chance, so every eligible platform carries a coin.
	if len(low.Coins()) != cfg.InitialCount-cfg.CoinFirstIndex {
		t.Errorf("coins = %d with zero draws", len(low.Coins()))
	}

	high := NewGenerator(cfg, &scriptedRand{vals: []float64{0.999999}})
	for _, p := range high.Platforms() {
		if p.Y > cfg.MaxY {
			t.Errorf("high draw escaped the band: %v", p.Y)
		}
	}
	if len(high.Coins()) != 0 {
		t.Errorf("near-one draws should never spawn coins, got %d", len(high.Coins()))
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	cfg := testLevel()
	a := NewGenerator(cfg, NewRand(99))
	b := NewGenerator(cfg, NewRand(99))
	for cam := 0.0; cam < 20000; cam += 250 {
		a.Extend(cam)
		a.Prune(cam)
		b.Extend(cam)
		b.Prune(cam)
	}
	if !reflect.DeepEqual(a.Platforms(), b.Platforms()) || !reflect.DeepEqual(a.Coins(), b.Coins()) {
		t.Error("same seed produced different levels")
	}

	c := NewGenerator(cfg, NewRand(100))
	if reflect.DeepEqual(a.Platforms()[:5], c.Platforms()[:5]) {
		t.Error("different seeds should produce different levels")
	}
}

func TestExtendKeepsFrontierAhead(t *testing.T) {
	cfg := testLevel()
	g := NewGenerator(cfg, NewRand(11))

	lastID := -1
	for cam := 0.0; cam < 60000; cam += 6 {
		if !g.Extend(cam) {
			t.Fatalf("cam %v: extend underflowed", cam)
		}
		g.Prune(cam)

		ps := g.Platforms()
		last := ps[len(ps)-1]
		if last.Right() < cam+cfg.Lookahead {
			t.Fatalf("cam %v: frontier right edge %v behind lookahead", cam, last.Right())
		}
		if last.ID < lastID {
			t.Fatalf("cam %v: frontier id went backwards", cam)
		}
		lastID = last.ID
		for i := 1; i < len(ps); i++ {
			if ps[i].X <= ps[i-1].Right() && cfg.MinGap > 0 {
				t.Fatalf("cam %v: platforms out of order", cam)
			}
		}
		if ps[0].Right() < cam-cfg.TrailMargin {
			t.Fatalf("cam %v: stale platform %d kept", cam, ps[0].ID)
		}
	}
}

func TestExtendCapAndFill(t *testing.T) {
	cfg := testLevel()
	cfg.MaxSpawnPerTick = 1
	g := NewGenerator(cfg, NewRand(5))

	before := len(g.Platforms())
	if g.Extend(50000) {
		t.Fatal("a single spawn cannot cover a far camera")
	}
	if len(g.Platforms()) != before+1 {
		t.Fatalf("capped extend spawned %d platforms", len(g.Platforms())-before)
	}

	g.Fill(50000)
	if g.Frontier().X <= 50000+cfg.Lookahead {
		t.Errorf("Fill left the frontier at %v", g.Frontier().X)
	}
}

func TestPruneKeepsFrontier(t *testing.T) {
	cfg := testLevel()
	g := NewGenerator(cfg, NewRand(1))
	frontier := g.Frontier()

	g.Prune(1e9)
	if len(g.Platforms()) != 0 || len(g.Coins()) != 0 {
		t.Fatal("everything should be pruned behind a far camera")
	}
	g.Extend(1e9)
	if g.Frontier().X <= frontier.X || g.Frontier().ID <= frontier.ID {
		t.Error("new platforms must continue after the frontier, not restart")
	}
}

func TestResetRebuildsFromSource(t *testing.T) {
	cfg := testLevel()
	g := NewGenerator(cfg, NewRand(21))
	want := append([]Platform(nil), g.Platforms()...)
	wantCoins := append([]Coin(nil), g.Coins()...)

	g.Extend(9000)
	g.Prune(9000)
	g.Reset(NewRand(21))

	if !reflect.DeepEqual(g.Platforms(), want) || !reflect.DeepEqual(g.Coins(), wantCoins) {
		t.Error("Reset with an equivalent seed should rebuild the same frontier")
	}
}
