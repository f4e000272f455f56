package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:           0.8,
			MaxFallSpeed:      15,
			JumpImpulse:       -15,
			DoubleJumpImpulse: -13,
			LandingTolerance:  10,
			MaxStepScale:      1,
			FallThreshold:     600,
		},
		Player: RunnerPlayer{
			StartX: 30,
			StartY: 318,
			Width:  32,
			Height: 32,
		},
		Level: RunnerLevel{
			FirstX:          0,
			FirstY:          350,
			FirstWidth:      200,
			InitialCount:    20,
			PlatformHeight:  30,
			MinGap:          100,
			MaxGap:          180,
			MaxRise:         30,
			MinY:            250,
			MaxY:            400,
			MinWidth:        120,
			MaxWidth:        180,
			CoinChance:      0.4,
			CoinSize:        16,
			CoinLift:        25,
			CoinFirstIndex:  2,
			Lookahead:       1200,
			TrailMargin:     200,
			MaxSpawnPerTick: 64,
		},
		Scoring: RunnerScoring{
			CellWidth: 200,
			CellBonus: 1,
			CoinBonus: 5,
			BaseSpeed: 3,
			SpeedStep: 0.1,
			MaxSpeed:  6,
		},
		Camera: RunnerCamera{
			ViewBehind: 100,
			ViewAhead:  1300,
			Parallax:   0.8,
		},
		Phases: RunnerPhases{
			StartMode: "gated",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
		},
	}
}
