package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tap-ninja/internal/storage"
)

type fakeSource struct {
	scores map[string][]storage.ScoreEntry
	best   map[string]int
	err    error
}

func (f *fakeSource) TopScores(gameID string, limit int) ([]storage.ScoreEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scores[gameID], nil
}

func (f *fakeSource) BestScore(gameID string) (int, error) {
	return f.best[gameID], nil
}

func TestScoreboardShowsScoresAndBest(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	src := &fakeSource{
		scores: map[string][]storage.ScoreEntry{
			"runner":     {{GameID: "runner", Score: 42, CreatedAt: at}, {GameID: "runner", Score: 17, CreatedAt: at}},
			"runner_tap": {{GameID: "runner_tap", Score: 8, CreatedAt: at}},
		},
		best: map[string]int{"runner": 45, "runner_tap": 8},
	}

	m := NewScoreboardModel(src, 100, 30)
	if len(m.games) < 2 || m.games[0].ID != "runner" {
		t.Fatalf("expected both runner variants registered, got %v", m.games)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "42", "Best: 45", "Mar 04"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.games[m.gameCursor].ID != "runner_tap" || len(m.scores) != 1 || m.best != 8 {
		t.Errorf("tab should switch to runner_tap, got cursor %d scores %v best %d", m.gameCursor, m.scores, m.best)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.gameCursor != 0 {
		t.Errorf("shift+tab should go back, cursor = %d", m.gameCursor)
	}
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	m := NewScoreboardModel(&fakeSource{}, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty history should say so")
	}

	m = NewScoreboardModel(&fakeSource{err: errors.New("locked")}, 80, 24)
	if !strings.Contains(m.View(), "locked") {
		t.Error("load errors should be shown")
	}

	m = NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("missing store should look empty")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(&fakeSource{}, 80, 24)
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || next.(ScoreboardModel).View() != "" {
		t.Error("q should quit the scoreboard")
	}
}
