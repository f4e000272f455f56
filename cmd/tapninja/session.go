package main

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tap-ninja/internal/audio"
	"github.com/vovakirdan/tap-ninja/internal/games/runner"
	"github.com/vovakirdan/tap-ninja/internal/games/runner/sim"
	"github.com/vovakirdan/tap-ninja/internal/platform/tui"
	"github.com/vovakirdan/tap-ninja/internal/storage"
)

// gdataApp names the per-user gdata directory.
const gdataApp = "tapninja"

// session holds the collaborators shared by every run in this process.
type session struct {
	logger *log.Logger
	store  *storage.Store // nil when the database could not be opened
	best   storage.BestScores
}

// openSession opens storage, selects the best-score backend and installs
// it (plus sound, when wanted) into the runner package. Failures only
// degrade the session: the game always runs.
func openSession(logger *log.Logger, withSound bool) *session {
	s := &session{logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
	} else {
		s.store = store
		s.best = store
	}

	if flagBestStore == "gdata" {
		kv, err := storage.OpenKV(gdataApp)
		if err != nil {
			logger.Warn("could not open gdata best-score store", "error", err)
		} else {
			s.best = kv
		}
	}

	if s.best != nil {
		best := s.best
		runner.SetBestStore(func(gameID string) sim.BestScoreStore {
			return storage.NewBestKeeper(best, gameID)
		})
	}
	runner.SetErrorHandler(func(err error) {
		logger.Warn("game collaborator failed", "error", err)
	})

	if withSound && !flagMute {
		cues, err := audio.OpenSpeaker(0.4)
		if err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			runner.SetListeners(cues)
		}
	}
	return s
}

// scores returns the history recorder, or nil without a database.
func (s *session) scores() tui.ScoreRecorder {
	if s.store == nil {
		return nil
	}
	return s.store
}

// saveScore records a finished run, logging failures.
func (s *session) saveScore(gameID string, score int) {
	if s.store == nil || score <= 0 {
		return
	}
	if _, err := s.store.SaveScore(gameID, score); err != nil {
		s.logger.Warn("could not save score", "game", gameID, "error", err)
	}
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}
