package enginebridge

import (
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// resultCache memoizes evaluate/analyze replies keyed by FEN and request
// shape, so repeated evaluate/analyze calls against a position the engine
// has already scored do not re-suspend the control thread on a fresh
// request; best_move replies are not cached. A miss or read error falls
// through to a live engine request; an error opening the store fails
// enginebridge.New.
type resultCache struct {
	db *badger.DB
}

// openResultCache opens (or creates) an on-disk Badger store at dir. An
// empty dir requests Badger's in-memory mode, used by short-lived CLI
// sessions that should not leave cache files behind.
func openResultCache(dir string) (*resultCache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &resultCache{db: db}, nil
}

func evaluateKey(fen string) []byte {
	return []byte(fmt.Sprintf("eval:%s", fen))
}

func analyzeKey(fen string, depth, timeLimitMs int) []byte {
	return []byte(fmt.Sprintf("analyze:%s:%d:%d", fen, depth, timeLimitMs))
}

func (c *resultCache) getEvaluate(fen string) (int, bool) {
	if c == nil {
		return 0, false
	}
	var score int
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(evaluateKey(fen))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &score)
		})
	})
	if err != nil {
		return 0, false
	}
	return score, true
}

func (c *resultCache) putEvaluate(fen string, score int) {
	if c == nil {
		return
	}
	v, err := json.Marshal(score)
	if err != nil {
		return
	}
	_ = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(evaluateKey(fen), v)
	})
}

func (c *resultCache) getAnalyze(fen string, depth, timeLimitMs int) (Analysis, bool) {
	if c == nil {
		return Analysis{}, false
	}
	var a Analysis
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(analyzeKey(fen, depth, timeLimitMs))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &a)
		})
	})
	if err != nil {
		return Analysis{}, false
	}
	return a, true
}

func (c *resultCache) putAnalyze(fen string, depth, timeLimitMs int, a Analysis) {
	if c == nil {
		return
	}
	v, err := json.Marshal(a)
	if err != nil {
		return
	}
	_ = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(analyzeKey(fen, depth, timeLimitMs), v)
	})
}

func (c *resultCache) close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}
