package sim

import (
	"math/rand"

	"github.com/vovakirdan/tap-ninja/internal/config"
)

// RandSource supplies uniform values in [0, 1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewRand returns the default seeded source.
func NewRand(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// Generator streams platforms and coins ahead of the camera and drops the
// ones left behind it. Appended platforms always start to the right of
// every platform generated before them.
type Generator struct {
	cfg config.RunnerLevel
	rng RandSource

	platforms []Platform
	coins     []Coin

	last     Platform // rightmost platform ever generated, kept across pruning
	spawned  int      // platforms generated this run
	nextCoin int
	hasLast  bool
}

// NewGenerator creates a generator and builds its initial frontier.
func NewGenerator(cfg config.RunnerLevel, rng RandSource) *Generator {
	g := &Generator{cfg: cfg}
	g.Reset(rng)
	return g
}

// Reset discards every entity and rebuilds the initial frontier from rng:
// the fixed first rooftop followed by InitialCount-1 random ones.
func (g *Generator) Reset(rng RandSource) {
	g.rng = rng
	g.platforms = g.platforms[:0]
	g.coins = g.coins[:0]
	g.spawned = 0
	g.nextCoin = 0
	g.hasLast = false

	g.add(Platform{Rect: Rect{X: g.cfg.FirstX, Y: g.cfg.FirstY, W: g.cfg.FirstWidth, H: g.cfg.PlatformHeight}})
	for i := 1; i < g.cfg.InitialCount; i++ {
		g.spawn()
	}
}

func (g *Generator) add(p Platform) {
	p.ID = g.spawned
	g.spawned++
	g.platforms = append(g.platforms, p)
	g.last = p
	g.hasLast = true
}

// spawn appends one platform after the frontier. Random draws happen in a
// fixed order (gap, rise, width, coin) so a seed fully determines the level.
func (g *Generator) spawn() {
	c := g.cfg
	gap := c.MinGap + g.rng.Float64()*(c.MaxGap-c.MinGap)
	rise := (g.rng.Float64()*2 - 1) * c.MaxRise
	width := c.MinWidth + g.rng.Float64()*(c.MaxWidth-c.MinWidth)

	y := g.last.Y + rise
	if y < c.MinY {
		y = c.MinY
	}
	if y > c.MaxY {
		y = c.MaxY
	}

	index := g.spawned
	p := Platform{Rect: Rect{X: g.last.Right() + gap, Y: y, W: width, H: c.PlatformHeight}}
	g.add(p)

	if index >= c.CoinFirstIndex && g.rng.Float64() < c.CoinChance {
		g.coins = append(g.coins, Coin{
			ID: g.nextCoin,
			Rect: Rect{
				X: p.X + p.W/2 - c.CoinSize/2,
				Y: p.Y - c.CoinLift,
				W: c.CoinSize,
				H: c.CoinSize,
			},
		})
		g.nextCoin++
	}
}

// satisfied reports whether the frontier starts beyond cameraX + lookahead.
func (g *Generator) satisfied(cameraX float64) bool {
	return g.hasLast && g.last.X > cameraX+g.cfg.Lookahead
}

// Extend appends platforms until the frontier starts beyond cameraX plus
// the lookahead, spawning at most MaxSpawnPerTick of them. It reports
// whether the frontier requirement holds afterwards.
func (g *Generator) Extend(cameraX float64) bool {
	for n := 0; n < g.cfg.MaxSpawnPerTick && !g.satisfied(cameraX); n++ {
		g.spawn()
	}
	return g.satisfied(cameraX)
}

// Fill appends platforms without a per-call cap until the frontier is
// satisfied. Every spawn moves the frontier right by at least MinWidth, so
// the loop ends for any validated config.
func (g *Generator) Fill(cameraX float64) {
	for !g.satisfied(cameraX) {
		g.spawn()
	}
}

// Prune drops platforms and coins whose right edge is more than the trail
// margin behind cameraX, preserving generation order.
func (g *Generator) Prune(cameraX float64) {
	limit := cameraX - g.cfg.TrailMargin

	kept := g.platforms[:0]
	for _, p := range g.platforms {
		if p.Right() >= limit {
			kept = append(kept, p)
		}
	}
	g.platforms = kept

	keptCoins := g.coins[:0]
	for _, c := range g.coins {
		if c.Right() >= limit {
			keptCoins = append(keptCoins, c)
		}
	}
	g.coins = keptCoins
}

// Platforms returns the active platforms in generation order. The slice is
// owned by the generator.
func (g *Generator) Platforms() []Platform { return g.platforms }

// Coins returns the active coins in generation order. The slice is owned by
// the generator.
func (g *Generator) Coins() []Coin { return g.coins }

// Frontier returns the most recently generated platform.
func (g *Generator) Frontier() Platform { return g.last }
