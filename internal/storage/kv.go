package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/quasilyte/gdata"
)

// ItemStore is the key-value surface of a gdata manager.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// KVStore keeps best scores as small JSON items in a key-value store,
// for hosts that do not want a database file (the browser build).
type KVStore struct {
	mu    sync.Mutex
	items ItemStore
}

type bestRecord struct {
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OpenKV opens the per-user gdata directory of appName.
func OpenKV(appName string) (*KVStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %s: %w", appName, err)
	}
	return NewKVStore(m), nil
}

// NewKVStore wraps an existing item store.
func NewKVStore(items ItemStore) *KVStore {
	return &KVStore{items: items}
}

func bestKey(gameID string) string {
	return "best_" + gameID
}

// BestScore returns the stored best for gameID, or 0 when none exists.
func (s *KVStore) BestScore(gameID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(gameID)
	if err != nil {
		return 0, err
	}
	return rec.Score, nil
}

// SaveBest stores score for gameID if it beats the stored best.
func (s *KVStore) SaveBest(gameID string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load(gameID)
	if err != nil {
		return err
	}
	if score <= rec.Score {
		return nil
	}

	data, err := json.Marshal(bestRecord{Score: score, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("storage: cannot encode best score: %w", err)
	}
	if err := s.items.SaveItem(bestKey(gameID), data); err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

func (s *KVStore) load(gameID string) (bestRecord, error) {
	var rec bestRecord
	data, err := s.items.LoadItem(bestKey(gameID))
	if err != nil {
		return rec, fmt.Errorf("storage: cannot load best score: %w", err)
	}
	if data == nil {
		// Nothing saved yet
		return rec, nil
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("storage: cannot parse best score: %w", err)
	}
	return rec, nil
}
