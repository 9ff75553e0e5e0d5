package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/hailam/negachess/internal/board"
)

// Storage keys
const (
	keySettings    = "settings"
	keyStats       = "stats"
	perftKeyPrefix = "perft/"
)

// Settings stores the engine options that survive restarts.
type Settings struct {
	Difficulty string    `json:"difficulty"`
	Depth      int       `json:"depth"` // 0 means use the difficulty preset
	UpdatedAt  time.Time `json:"updated_at"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() *Settings {
	return &Settings{Difficulty: "medium"}
}

// SearchStats accumulates totals over every search the engine has run.
type SearchStats struct {
	Searches  int           `json:"searches"`
	Nodes     uint64        `json:"nodes"`
	TotalTime time.Duration `json:"total_time"`
	Deepest   int           `json:"deepest"`
}

// NodesPerSecond returns the average search speed.
func (s *SearchStats) NodesPerSecond() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	return float64(s.Nodes) / s.TotalTime.Seconds()
}

// PerftRecord is a cached leaf count for one position and depth.
type PerftRecord struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
	Nodes uint64 `json:"nodes"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger database")
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

// SaveSettings saves engine settings.
func (s *Storage) SaveSettings(settings *Settings) error {
	settings.UpdatedAt = time.Now()
	return errors.Wrap(s.putJSON([]byte(keySettings), settings), "save settings")
}

// LoadSettings loads engine settings, returns defaults if not found.
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()
	if _, err := s.getJSON([]byte(keySettings), settings); err != nil {
		return settings, errors.Wrap(err, "load settings")
	}
	return settings, nil
}

// LoadStats loads search statistics, returns empty stats if not found.
func (s *Storage) LoadStats() (*SearchStats, error) {
	stats := &SearchStats{}
	if _, err := s.getJSON([]byte(keyStats), stats); err != nil {
		return stats, errors.Wrap(err, "load stats")
	}
	return stats, nil
}

// RecordSearch adds one completed search to the statistics.
func (s *Storage) RecordSearch(depth int, nodes uint64, elapsed time.Duration) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Searches++
	stats.Nodes += nodes
	stats.TotalTime += elapsed
	if depth > stats.Deepest {
		stats.Deepest = depth
	}
	return errors.Wrap(s.putJSON([]byte(keyStats), stats), "save stats")
}

// perftKey is the prefix followed by the big-endian hash and the depth.
func perftKey(hash uint64, depth int) []byte {
	key := make([]byte, len(perftKeyPrefix)+9)
	n := copy(key, perftKeyPrefix)
	binary.BigEndian.PutUint64(key[n:], hash)
	key[n+8] = byte(depth)
	return key
}

// SavePerft stores a perft count for pos at depth.
func (s *Storage) SavePerft(pos board.Position, depth int, nodes uint64) error {
	rec := PerftRecord{FEN: pos.FEN(), Depth: depth, Nodes: nodes}
	return errors.Wrapf(s.putJSON(perftKey(pos.Hash(), depth), &rec), "save perft depth %d", depth)
}

// LoadPerft returns the cached count for pos at depth. A record stored for a
// different position under the same hash is reported as not found.
func (s *Storage) LoadPerft(pos board.Position, depth int) (uint64, bool, error) {
	var rec PerftRecord
	found, err := s.getJSON(perftKey(pos.Hash(), depth), &rec)
	if err != nil {
		return 0, false, errors.Wrapf(err, "load perft depth %d", depth)
	}
	if !found || rec.Depth != depth || rec.FEN != pos.FEN() {
		return 0, false, nil
	}
	return rec.Nodes, true, nil
}

// Perft returns the leaf count for pos at depth, computing and storing it
// when the cache has no entry. cached reports whether the value came from
// the database.
func (s *Storage) Perft(pos board.Position, depth int) (nodes uint64, cached bool, err error) {
	nodes, cached, err = s.LoadPerft(pos, depth)
	if err != nil || cached {
		return nodes, cached, err
	}

	nodes = board.Perft(pos, depth)
	return nodes, false, s.SavePerft(pos, depth, nodes)
}

// PerftRecords lists every cached perft entry.
func (s *Storage) PerftRecords() ([]PerftRecord, error) {
	var records []PerftRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(perftKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec PerftRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	return records, errors.Wrap(err, "list perft records")
}

func (s *Storage) putJSON(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// getJSON decodes the value at key into v. A missing key leaves v untouched
// and reports found=false.
func (s *Storage) getJSON(key []byte, v any) (found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}
