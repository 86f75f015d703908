package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyStats        = "stats"
	keyResultPrefix = "result/"
)

var ErrResultNotFound = errors.New("storage: result not found")

// Outcome of a finished game.
type Outcome string

const (
	OutcomeWhiteWins Outcome = "white"
	OutcomeBlackWins Outcome = "black"
	OutcomeDraw      Outcome = "draw"
)

// GameResult is what gets kept about a finished game. Positions and moves
// are not stored.
type GameResult struct {
	GameID     string    `json:"game_id"`
	Mode       string    `json:"mode"`
	Outcome    Outcome   `json:"outcome"`
	Reason     string    `json:"reason"` // checkmate / stalemate
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

// Stats aggregates every recorded result.
type Stats struct {
	Games     int `json:"games"`
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory returns a store that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func resultKey(id string) []byte { return []byte(keyResultPrefix + id) }

// RecordResult stores r and folds it into the aggregate stats. Recording
// the same game id twice keeps the first result.
func (s *Storage) RecordResult(r GameResult) error {
	if r.GameID == "" {
		return errors.New("storage: result without game id")
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(resultKey(r.GameID))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.Games++
		switch r.Outcome {
		case OutcomeWhiteWins:
			stats.WhiteWins++
		case OutcomeBlackWins:
			stats.BlackWins++
		case OutcomeDraw:
			stats.Draws++
		default:
			return fmt.Errorf("storage: unknown outcome %q", r.Outcome)
		}
		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set(resultKey(r.GameID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// Result loads the stored result of one game.
func (s *Storage) Result(id string) (GameResult, error) {
	var r GameResult
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(resultKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrResultNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	return r, err
}

// Results lists every stored result in key order.
func (s *Storage) Results() ([]GameResult, error) {
	var out []GameResult
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyResultPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var r GameResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// Stats loads the aggregate statistics, zero if nothing was recorded yet.
func (s *Storage) Stats() (Stats, error) {
	var stats Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (Stats, error) {
	var stats Stats
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil // Use empty stats
	}
	if err != nil {
		return stats, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &stats)
	})
	return stats, err
}
