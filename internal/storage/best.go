package storage

// BestScores is a per-game best-score backend. Both Store and KVStore
// implement it.
type BestScores interface {
	BestScore(gameID string) (int, error)
	SaveBest(gameID string, score int) error
}

// BestKeeper binds a BestScores backend to one game, providing the
// LoadBest/SaveBest pair the simulation expects.
type BestKeeper struct {
	backend BestScores
	gameID  string
}

// NewBestKeeper returns a keeper for gameID.
func NewBestKeeper(backend BestScores, gameID string) *BestKeeper {
	return &BestKeeper{backend: backend, gameID: gameID}
}

// LoadBest returns the stored best score.
func (k *BestKeeper) LoadBest() (int, error) {
	return k.backend.BestScore(k.gameID)
}

// SaveBest stores score if it beats the stored best.
func (k *BestKeeper) SaveBest(score int) error {
	return k.backend.SaveBest(k.gameID, score)
}
