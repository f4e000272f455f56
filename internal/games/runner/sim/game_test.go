package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tap-ninja/internal/config"
)

func newTestGame(t *testing.T, cfg config.RunnerConfig, opts Options) *Game {
	t.Helper()
	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// flatConfig builds an unbroken, level row of rooftops with no coins.
func flatConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Level.MinGap, cfg.Level.MaxGap = 0, 0
	cfg.Level.MaxRise = 0
	cfg.Level.CoinChance = 0
	return cfg
}

func startPlaying(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 2 && g.Phase() != PhasePlaying; i++ {
		g.RequestAdvancePhase()
	}
	if g.Phase() != PhasePlaying {
		t.Fatalf("could not reach playing, phase = %v", g.Phase())
	}
}

type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(k EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

type memBest struct {
	best    int
	saves   []int
	loadErr error
	saveErr error
}

func (m *memBest) LoadBest() (int, error) { return m.best, m.loadErr }

func (m *memBest) SaveBest(score int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.best = score
	m.saves = append(m.saves, score)
	return nil
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig(), Options{Seed: 1})
	s := g.Snapshot()

	want := Body{Rect: Rect{X: 30, Y: 318, W: 32, H: 32}, Grounded: true, CanDoubleJump: true}
	if s.Body != want {
		t.Errorf("body = %+v, expected %+v", s.Body, want)
	}
	if s.Phase != PhaseIdle || s.Score != 0 || s.Speed != 3 || s.CameraX != 0 {
		t.Errorf("unexpected initial snapshot: %+v", s)
	}
	if len(s.Platforms) != 20 {
		t.Errorf("platforms = %d, expected 20", len(s.Platforms))
	}
	if s.Body.Bottom() != s.Platforms[0].Y {
		t.Error("body should start resting on the first rooftop")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Level.MinWidth = 0
	if _, err := New(cfg, Options{}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() error = %v, expected ErrInvalid", err)
	}
}

func TestJumpIgnoredOutsidePlaying(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	g := newTestGame(t, cfg, Options{Seed: 2})

	check := func(stage string) {
		t.Helper()
		before := g.Snapshot()
		if k := g.RequestJump(); k != JumpNone {
			t.Errorf("%s: jump returned %v", stage, k)
		}
		after := g.Snapshot()
		if after.Body != before.Body || after.Score != before.Score || after.Speed != before.Speed {
			t.Errorf("%s: jump changed state", stage)
		}
	}

	check("idle")
	g.RequestAdvancePhase()
	check("ready")

	startPlaying(t, g)
	for i := 0; i < 2000 && g.Phase() == PhasePlaying; i++ {
		g.Tick(1)
	}
	if g.Phase() != PhaseEnded {
		t.Fatal("run without jumps should end")
	}
	check("ended")
}

func TestTickOutsidePlayingIsInert(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig(), Options{Seed: 3})
	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Tick(1)
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("ticks in idle must not change the simulation")
	}
}

func TestStraightforwardRun(t *testing.T) {
	cfg := flatConfig()
	g := newTestGame(t, cfg, Options{Seed: 4})
	startPlaying(t, g)

	prevScore, prevSpeed, prevCam := 0, g.Snapshot().Speed, 0.0
	for i := 0; i < 3000; i++ {
		g.Tick(1)
		s := g.Snapshot()

		if !s.Body.Grounded || s.Body.Bottom() != cfg.Level.FirstY {
			t.Fatalf("tick %d: body left the rooftops: %+v", i, s.Body)
		}
		if want := int(math.Floor(s.CameraX / cfg.Scoring.CellWidth)); s.Score != want {
			t.Fatalf("tick %d: score %d, expected floor(%v/200) = %d", i, s.Score, s.CameraX, want)
		}
		if s.Speed < prevSpeed || s.Speed > cfg.Scoring.MaxSpeed {
			t.Fatalf("tick %d: speed %v not monotone within cap", i, s.Speed)
		}
		if s.Score < prevScore || s.CameraX <= prevCam {
			t.Fatalf("tick %d: score or camera went backwards", i)
		}
		if math.Abs(s.Body.X-cfg.Player.StartX-s.CameraX) > 1e-6 {
			t.Fatalf("tick %d: camera drifted from body", i)
		}
		if last := s.Platforms[len(s.Platforms)-1]; last.Right() < s.CameraX+cfg.Level.Lookahead {
			t.Fatalf("tick %d: frontier starved", i)
		}
		prevScore, prevSpeed, prevCam = s.Score, s.Speed, s.CameraX
	}

	if g.Snapshot().Speed != cfg.Scoring.MaxSpeed {
		t.Errorf("speed = %v, expected the cap %v", g.Snapshot().Speed, cfg.Scoring.MaxSpeed)
	}
	if g.Underflows() != 0 {
		t.Errorf("underflows = %d", g.Underflows())
	}
}

func TestCoinsScoreOnce(t *testing.T) {
	cfg := flatConfig()
	cfg.Level.CoinChance = 1
	rec := &recorder{}
	g := newTestGame(t, cfg, Options{Seed: 5, Listeners: []Listener{rec}})
	startPlaying(t, g)

	seen := map[int]bool{}
	for i := 0; i < 1500; i++ {
		g.Tick(1)
	}
	for _, e := range rec.events {
		if e.Kind != EventCoinCollected {
			continue
		}
		if seen[e.Coin] {
			t.Fatalf("coin %d collected twice", e.Coin)
		}
		seen[e.Coin] = true
	}

	coins := rec.count(EventCoinCollected)
	if coins == 0 {
		t.Fatal("running through coins at body height should collect them")
	}
	s := g.Snapshot()
	cells := int(math.Floor(s.CameraX / cfg.Scoring.CellWidth))
	if s.Score != cells+coins*cfg.Scoring.CoinBonus {
		t.Errorf("score = %d, expected %d cells + %d coins", s.Score, cells, coins)
	}
	for _, c := range s.Coins {
		if c.Right() < s.Body.X && !c.Collected {
			t.Errorf("passed coin %d was not collected", c.ID)
		}
	}
}

func TestAirborneCellsAreNotCredited(t *testing.T) {
	cfg := flatConfig()
	g := newTestGame(t, cfg, Options{Seed: 6})
	startPlaying(t, g)

	for g.Snapshot().CameraX < 150 {
		g.Tick(1)
	}
	if g.Snapshot().Score != 0 {
		t.Fatalf("score before the first cell = %d", g.Snapshot().Score)
	}

	g.RequestJump()
	crossed := false
	prevCam := g.Snapshot().CameraX
	for i := 0; i < 200; i++ {
		prevCam = g.Snapshot().CameraX
		g.Tick(1)
		s := g.Snapshot()
		if s.Body.Grounded {
			break
		}
		if s.CameraX >= cfg.Scoring.CellWidth {
			crossed = true
		}
		if s.Score != 0 {
			t.Fatalf("tick %d: score changed to %d while airborne", i, s.Score)
		}
	}

	s := g.Snapshot()
	if !s.Body.Grounded || !crossed {
		t.Fatalf("jump should cross a cell boundary and land, grounded=%v crossed=%v", s.Body.Grounded, crossed)
	}
	// Only a boundary crossed on the landing tick itself may count.
	cell := func(x float64) int { return int(math.Floor(x / cfg.Scoring.CellWidth)) }
	want := 0
	if cell(s.CameraX) > cell(prevCam) {
		want = 1
	}
	if s.Score != want {
		t.Fatalf("score after landing = %d, expected %d", s.Score, want)
	}

	next := cell(s.CameraX) + 1
	for cell(g.Snapshot().CameraX) < next {
		g.Tick(1)
	}
	if got := g.Snapshot().Score; got != want+1 {
		t.Errorf("score after the next grounded cell = %d, expected %d", got, want+1)
	}
}

func TestFatalFallEndsWithoutGeneration(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	// Dry run to find the fall tick.
	dry := newTestGame(t, cfg, Options{Seed: 8})
	startPlaying(t, dry)
	var camBefore, camAt float64
	fallTick := -1
	for i := 0; i < 1000; i++ {
		camBefore = dry.Snapshot().CameraX
		dry.Tick(1)
		if dry.Phase() == PhaseEnded {
			fallTick, camAt = i, dry.Snapshot().CameraX
			break
		}
	}
	if fallTick < 0 {
		t.Fatal("run without jumps should fall")
	}

	// Pick a trail margin that would prune the first rooftop exactly on the
	// fall tick if pruning ran.
	cfg.Level.TrailMargin = (camBefore+camAt)/2 - cfg.Level.FirstWidth
	src := &countingRand{RandSource: NewRand(8)}
	rec := &recorder{}
	g := newTestGame(t, cfg, Options{
		Seed:      8,
		Source:    func(int64) RandSource { return src },
		Listeners: []Listener{rec},
	})
	startPlaying(t, g)
	for i := 0; i < fallTick; i++ {
		g.Tick(1)
	}
	before := g.Snapshot()
	if before.Phase != PhasePlaying || before.Body.Y > cfg.Physics.FallThreshold {
		t.Fatalf("fall came early: %+v", before.Body)
	}
	draws := src.calls

	g.Tick(1)
	after := g.Snapshot()
	if after.Phase != PhaseEnded {
		t.Fatalf("phase = %v on the fall tick", after.Phase)
	}
	if after.Body.Y <= cfg.Physics.FallThreshold {
		t.Errorf("ended without crossing the threshold, y = %v", after.Body.Y)
	}
	if rec.count(EventFall) != 1 {
		t.Errorf("fall events = %d", rec.count(EventFall))
	}
	if !reflect.DeepEqual(before.Platforms, after.Platforms) || !reflect.DeepEqual(before.Coins, after.Coins) {
		t.Error("the fall tick must not generate or prune")
	}
	if src.calls != draws {
		t.Error("the fall tick drew random numbers")
	}

	g.Tick(1)
	if !reflect.DeepEqual(after, g.Snapshot()) {
		t.Error("ticks after the end must not change state")
	}
}

type countingRand struct {
	RandSource
	calls int
}

func (c *countingRand) Float64() float64 {
	c.calls++
	return c.RandSource.Float64()
}

func TestDoubleJumpLimit(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	rec := &recorder{}
	g := newTestGame(t, cfg, Options{Seed: 9, Listeners: []Listener{rec}})
	startPlaying(t, g)
	g.Tick(1)

	if k := g.RequestJump(); k != JumpPrimary || g.Snapshot().Body.VelY != cfg.Physics.JumpImpulse {
		t.Fatalf("first jump = %v, vel %v", k, g.Snapshot().Body.VelY)
	}
	g.Tick(1)
	if k := g.RequestJump(); k != JumpDouble || g.Snapshot().Body.VelY != cfg.Physics.DoubleJumpImpulse {
		t.Fatalf("second jump = %v, vel %v", k, g.Snapshot().Body.VelY)
	}
	g.Tick(1)
	vel := g.Snapshot().Body.VelY
	if k := g.RequestJump(); k != JumpNone || g.Snapshot().Body.VelY != vel {
		t.Fatalf("third jump = %v, vel %v -> %v", k, vel, g.Snapshot().Body.VelY)
	}

	if rec.count(EventJump) != 1 || rec.count(EventDoubleJump) != 1 {
		t.Errorf("jump events = %d, double = %d", rec.count(EventJump), rec.count(EventDoubleJump))
	}
}

func runUntilEnded(t *testing.T, g *Game) {
	t.Helper()
	startPlaying(t, g)
	g.RequestJump()
	for i := 0; i < 2000 && g.Phase() == PhasePlaying; i++ {
		g.Tick(1)
	}
	if g.Phase() != PhaseEnded {
		t.Fatal("run did not end")
	}
}

func TestRestartCleanliness(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	g := newTestGame(t, cfg, Options{Seed: 42})
	runUntilEnded(t, g)
	if !g.RequestRestart() {
		t.Fatal("restart from ended should succeed")
	}

	fresh := newTestGame(t, cfg, Options{Seed: 42})
	got, want := g.Snapshot(), fresh.Snapshot()
	got.Best, want.Best = 0, 0 // the best score legitimately survives a restart
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restarted state differs from a fresh game:\n got %+v\nwant %+v", got, want)
	}
}

func TestRestartReseeds(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	g := newTestGame(t, cfg, Options{Seed: 1, Reseed: func() int64 { return 77 }})
	runUntilEnded(t, g)
	g.RequestRestart()

	fresh := newTestGame(t, cfg, Options{Seed: 77})
	if g.Seed() != 77 {
		t.Errorf("seed after restart = %d", g.Seed())
	}
	if !reflect.DeepEqual(g.Snapshot().Platforms, fresh.Snapshot().Platforms) {
		t.Error("reseeded level should match a fresh game with that seed")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig(), Options{Seed: 10})
	startPlaying(t, g)
	g.Tick(1)
	if g.RequestRestart() || g.Phase() != PhasePlaying {
		t.Error("restart must be a no-op while playing")
	}
}

func TestTapStartMode(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Phases.StartMode = "tap"
	g := newTestGame(t, cfg, Options{Seed: 11})

	if cmd := g.Apply(Tap()); cmd != CommandAdvance || g.Phase() != PhasePlaying {
		t.Fatalf("first tap should start the run, phase = %v", g.Phase())
	}
	if cmd := g.Apply(Tap()); cmd != CommandJump {
		t.Errorf("second tap should jump, got %v", cmd)
	}
}

func TestTickScaleIsCapped(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	a := newTestGame(t, cfg, Options{Seed: 12})
	b := newTestGame(t, cfg, Options{Seed: 12})
	startPlaying(t, a)
	startPlaying(t, b)
	a.RequestJump()
	b.RequestJump()

	a.Tick(1)
	b.Tick(250) // a stalled frame
	if a.Snapshot().Body != b.Snapshot().Body {
		t.Errorf("oversized step was not capped: %+v vs %+v", a.Snapshot().Body, b.Snapshot().Body)
	}

	c := newTestGame(t, cfg, Options{Seed: 12})
	startPlaying(t, c)
	c.RequestJump()
	c.Advance(5 * time.Second)
	if a.Snapshot().Body != c.Snapshot().Body {
		t.Error("Advance should cap a long frame at one step")
	}

	d := newTestGame(t, cfg, Options{Seed: 12})
	startPlaying(t, d)
	d.Advance(StepDuration / 2)
	if got := d.Snapshot().CameraX; math.Abs(got-cfg.Scoring.BaseSpeed/2) > 1e-6 {
		t.Errorf("half frame moved camera %v, expected %v", got, cfg.Scoring.BaseSpeed/2)
	}

	before := d.Snapshot()
	d.Tick(0)
	d.Tick(-1)
	d.Tick(math.NaN())
	if !reflect.DeepEqual(before, d.Snapshot()) {
		t.Error("non-positive scales must not advance the run")
	}
}

func TestPushIsDrainedAtTickStart(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig(), Options{Seed: 13})
	g.Push(KeyPress("space"))
	if g.Phase() != PhaseIdle {
		t.Fatal("Push must not apply input immediately")
	}
	g.Tick(1)
	if g.Phase() != PhaseReady {
		t.Fatalf("queued input not applied: %v", g.Phase())
	}

	g.Push(KeyPress("space"))
	g.Push(KeyPress("space"))
	g.Tick(1)
	s := g.Snapshot()
	if s.Phase != PhasePlaying || s.Body.Grounded || s.Body.VelY >= 0 {
		t.Errorf("start and jump should apply before the tick's physics: %+v", s.Body)
	}
}

func TestBestScorePersistence(t *testing.T) {
	cfg := flatConfig()
	cfg.Level.CoinChance = 1
	store := &memBest{best: 7}
	g := newTestGame(t, cfg, Options{Seed: 14, Best: store})

	if g.Snapshot().Best != 7 {
		t.Fatalf("best = %d, expected value from store", g.Snapshot().Best)
	}
	startPlaying(t, g)
	for i := 0; i < 600; i++ {
		g.Tick(1)
	}
	s := g.Snapshot()
	if s.Score <= 7 {
		t.Fatalf("score %d never beat the stored best", s.Score)
	}
	if s.Best != s.Score || store.best != s.Score {
		t.Errorf("best = %d, stored = %d, score = %d", s.Best, store.best, s.Score)
	}
	for i := 1; i < len(store.saves); i++ {
		if store.saves[i] <= store.saves[i-1] {
			t.Fatalf("saves not increasing: %v", store.saves)
		}
	}
	if store.saves[0] <= 7 {
		t.Errorf("saved %d without beating the best", store.saves[0])
	}
}

func TestStoreFailuresAreSwallowed(t *testing.T) {
	cfg := flatConfig()
	store := &memBest{loadErr: errors.New("disk gone"), saveErr: errors.New("read-only")}
	var reported []error
	g := newTestGame(t, cfg, Options{Seed: 15, Best: store, OnError: func(err error) {
		reported = append(reported, err)
	}})

	startPlaying(t, g)
	for i := 0; i < 300; i++ {
		g.Tick(1)
	}
	if g.Snapshot().Score == 0 {
		t.Fatal("game should keep scoring when the store fails")
	}
	if len(reported) < 2 {
		t.Errorf("expected load and save failures to be reported, got %v", reported)
	}
}

func TestListenerPanicIsRecovered(t *testing.T) {
	var reported error
	g := newTestGame(t, config.DefaultRunnerConfig(), Options{
		Seed:      16,
		Listeners: []Listener{ListenerFunc(func(Event) { panic("speaker exploded") })},
		OnError:   func(err error) { reported = err },
	})
	rec := &recorder{}
	g.Subscribe(rec)

	startPlaying(t, g)
	g.Tick(1)
	g.RequestJump()

	if reported == nil {
		t.Error("listener panic should be reported")
	}
	if rec.count(EventJump) != 1 {
		t.Error("other listeners should still receive events")
	}
}

func TestPhaseEvents(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(t, config.DefaultRunnerConfig(), Options{Seed: 17, Listeners: []Listener{rec}})
	runUntilEnded(t, g)
	g.RequestRestart()

	var got []Phase
	for _, e := range rec.events {
		if e.Kind == EventPhaseChanged {
			got = append(got, e.To)
		}
	}
	want := []Phase{PhaseReady, PhasePlaying, PhaseEnded, PhaseIdle}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("phase events = %v, expected %v", got, want)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	g := newTestGame(t, config.DefaultRunnerConfig(), Options{Seed: 18})
	s := g.Snapshot()
	s.Platforms[0].Y = -1000
	s.Coins = nil
	if g.level.Platforms()[0].Y == -1000 {
		t.Error("snapshot shares storage with the game")
	}
	g.Tick(1)
	if g.Snapshot().Platforms[0].Y == -1000 {
		t.Error("next snapshot should be rebuilt from game state")
	}
}

func TestUnderflowForcesFill(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Level.InitialCount = 1
	cfg.Level.MaxSpawnPerTick = 1
	cfg.Level.Lookahead = 3000
	g := newTestGame(t, cfg, Options{Seed: 19})
	startPlaying(t, g)
	g.Tick(1)

	if g.Underflows() != 1 {
		t.Errorf("underflows = %d, expected 1", g.Underflows())
	}
	s := g.Snapshot()
	if last := s.Platforms[len(s.Platforms)-1]; last.X <= s.CameraX+cfg.Level.Lookahead {
		t.Error("forced fill should restore the frontier")
	}
}
