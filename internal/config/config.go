// Package config provides YAML-based configuration loading and difficulty
// presets for the rooftop runner.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure returned from Validate.
var ErrInvalid = errors.New("config: invalid")

// RunnerConfig contains all configuration for the rooftop runner.
// Units are world units (pixels of the reference 1200×600 view) and
// 60 Hz-normalized steps.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Player     RunnerPlayer     `yaml:"player"`
	Level      RunnerLevel      `yaml:"level"`
	Scoring    RunnerScoring    `yaml:"scoring"`
	Camera     RunnerCamera     `yaml:"camera"`
	Phases     RunnerPhases     `yaml:"phases"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines the vertical motion model.
type RunnerPhysics struct {
	Gravity           float64 `yaml:"gravity"`             // velocity added per step while airborne
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`      // terminal downward velocity
	JumpImpulse       float64 `yaml:"jump_impulse"`        // negative is up
	DoubleJumpImpulse float64 `yaml:"double_jump_impulse"` // impulse of the mid-air jump
	LandingTolerance  float64 `yaml:"landing_tolerance"`   // depth below a top still counted as landing
	MaxStepScale      float64 `yaml:"max_step_scale"`      // upper clamp of a tick's time scale
	FallThreshold     float64 `yaml:"fall_threshold"`      // y beyond which the run ends
}

// RunnerPlayer defines the body's starting placement and size.
type RunnerPlayer struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RunnerLevel defines procedural platform and coin generation.
type RunnerLevel struct {
	FirstX          float64 `yaml:"first_x"`
	FirstY          float64 `yaml:"first_y"`
	FirstWidth      float64 `yaml:"first_width"`
	InitialCount    int     `yaml:"initial_count"` // platforms in a fresh frontier, first included
	PlatformHeight  float64 `yaml:"platform_height"`
	MinGap          float64 `yaml:"min_gap"`
	MaxGap          float64 `yaml:"max_gap"`
	MaxRise         float64 `yaml:"max_rise"` // symmetric vertical offset bound
	MinY            float64 `yaml:"min_y"`
	MaxY            float64 `yaml:"max_y"`
	MinWidth        float64 `yaml:"min_width"`
	MaxWidth        float64 `yaml:"max_width"`
	CoinChance      float64 `yaml:"coin_chance"`
	CoinSize        float64 `yaml:"coin_size"`
	CoinLift        float64 `yaml:"coin_lift"`         // distance of a coin's top above the platform top
	CoinFirstIndex  int     `yaml:"coin_first_index"`  // platforms before this index never carry coins
	Lookahead       float64 `yaml:"lookahead"`         // frontier distance kept ahead of the camera
	TrailMargin     float64 `yaml:"trail_margin"`      // distance behind the camera before pruning
	MaxSpawnPerTick int     `yaml:"max_spawn_per_tick"` // iteration cap of a single extend pass
}

// RunnerScoring defines score and speed progression.
type RunnerScoring struct {
	CellWidth float64 `yaml:"cell_width"` // distance per scoring cell
	CellBonus int     `yaml:"cell_bonus"`
	CoinBonus int     `yaml:"coin_bonus"`
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedStep float64 `yaml:"speed_step"` // speed gained per credited cell
	MaxSpeed  float64 `yaml:"max_speed"`
}

// RunnerCamera defines the visible world window and the parallax factor.
type RunnerCamera struct {
	ViewBehind float64 `yaml:"view_behind"`
	ViewAhead  float64 `yaml:"view_ahead"`
	Parallax   float64 `yaml:"parallax"`
}

// RunnerPhases selects how a run is started.
type RunnerPhases struct {
	StartMode string `yaml:"start_mode"` // "gated" or "tap"
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
}

// StartSpeed returns the speed a fresh run begins with: base speed moved
// toward max speed by the initial difficulty level.
func (c RunnerConfig) StartSpeed() float64 {
	level := clampF(c.Difficulty.InitialLevel, 0, 1)
	return c.Scoring.BaseSpeed + level*(c.Scoring.MaxSpeed-c.Scoring.BaseSpeed)
}

// SpeedStep returns the per-cell speed gain, zero when progression is disabled.
func (c RunnerConfig) SpeedStep() float64 {
	if !c.Difficulty.Enabled {
		return 0
	}
	return c.Scoring.SpeedStep
}

// Validate reports the first inconsistency in the configuration.
func (c RunnerConfig) Validate() error {
	p, l, s := c.Physics, c.Level, c.Scoring
	switch {
	case p.Gravity <= 0:
		return invalid("physics.gravity must be positive, got %v", p.Gravity)
	case p.MaxFallSpeed <= 0:
		return invalid("physics.max_fall_speed must be positive, got %v", p.MaxFallSpeed)
	case p.JumpImpulse >= 0 || p.DoubleJumpImpulse >= 0:
		return invalid("physics jump impulses must be negative (upward)")
	case p.LandingTolerance < 0:
		return invalid("physics.landing_tolerance must not be negative")
	case p.MaxStepScale <= 0:
		return invalid("physics.max_step_scale must be positive")
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return invalid("player size must be positive")
	case l.InitialCount < 1:
		return invalid("level.initial_count must be at least 1")
	case l.FirstWidth <= 0 || l.PlatformHeight <= 0:
		return invalid("level first platform must have a positive size")
	case l.MinGap < 0 || l.MinGap > l.MaxGap:
		return invalid("level gap range [%v, %v] is invalid", l.MinGap, l.MaxGap)
	case l.MinWidth <= 0 || l.MinWidth > l.MaxWidth:
		return invalid("level width range [%v, %v] is invalid", l.MinWidth, l.MaxWidth)
	case l.MinY > l.MaxY:
		return invalid("level y band [%v, %v] is inverted", l.MinY, l.MaxY)
	case l.MaxRise < 0:
		return invalid("level.max_rise must not be negative")
	case l.CoinChance < 0 || l.CoinChance > 1:
		return invalid("level.coin_chance must be within [0, 1]")
	case l.Lookahead <= 0:
		return invalid("level.lookahead must be positive")
	case l.MaxSpawnPerTick < 1:
		return invalid("level.max_spawn_per_tick must be at least 1")
	case s.CellWidth <= 0:
		return invalid("scoring.cell_width must be positive")
	case s.BaseSpeed <= 0 || s.BaseSpeed > s.MaxSpeed:
		return invalid("scoring speed range [%v, %v] is invalid", s.BaseSpeed, s.MaxSpeed)
	case s.SpeedStep < 0:
		return invalid("scoring.speed_step must not be negative")
	case c.Camera.ViewBehind < 0 || c.Camera.ViewAhead <= 0:
		return invalid("camera view window must be non-empty")
	case c.Player.StartX < -c.Camera.ViewBehind || c.Player.StartX+c.Player.Width > c.Camera.ViewAhead:
		return invalid("player start_x %v must keep the player inside the camera view [-%v, %v]",
			c.Player.StartX, c.Camera.ViewBehind, c.Camera.ViewAhead)
	case c.Phases.StartMode != "" && c.Phases.StartMode != "gated" && c.Phases.StartMode != "tap":
		return invalid("phases.start_mode must be gated or tap, got %q", c.Phases.StartMode)
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return invalid("difficulty.initial_level must be within [0, 1]")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name from the command line.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
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

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the base speed for the whole run.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
