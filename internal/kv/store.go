// ABOUTME: Embedded key-value habit store on badger.
// ABOUTME: Habits live under type-prefixed keys as JSON values with a position counter.
package kv

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	badger "github.com/dgraph-io/badger/v3"
	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

const (
	HabitPrefix = "habit:"
	MetaPrefix  = "meta:"

	lastResetKey    = MetaPrefix + "last_reset"
	nextPositionKey = MetaPrefix + "next_position"
)

// Store implements storage.Repository over a badger database directory.
type Store struct {
	db *badger.DB
	mu sync.Mutex
}

// Compile-time check that Store implements Repository.
var _ storage.Repository = (*Store)(nil)

// record is the stored value: the habit plus its insertion position.
type record struct {
	*models.Habit
	Position int `json:"position"`
}

// Open opens or creates a badger database in dir. Badger's own logging is
// routed through logger when one is given.
func Open(dir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create kv directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger.WithPrefix("badger")})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the badger database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func habitKey(id string) []byte {
	return []byte(HabitPrefix + id)
}

func encodeInt(n int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(n))
	return b[:]
}

func decodeInt(b []byte) int {
	if len(b) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(b))
}

// nextPosition reserves the next insertion slot inside txn.
func nextPosition(txn *badger.Txn) (int, error) {
	next := 0
	item, err := txn.Get([]byte(nextPositionKey))
	switch {
	case err == nil:
		val, err := item.ValueCopy(nil)
		if err != nil {
			return 0, err
		}
		next = decodeInt(val)
	case !errors.Is(err, badger.ErrKeyNotFound):
		return 0, err
	}
	if err := txn.Set([]byte(nextPositionKey), encodeInt(next+1)); err != nil {
		return 0, err
	}
	return next, nil
}

func getRecord(txn *badger.Txn, id string) (*record, error) {
	item, err := txn.Get(habitKey(id))
	if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(val)
}

func decodeRecord(val []byte) (*record, error) {
	rec := record{Habit: &models.Habit{}}
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("decode habit: %w", err)
	}
	if rec.CompletionHistory == nil {
		rec.CompletionHistory = []string{}
	}
	return &rec, nil
}

func putRecord(txn *badger.Txn, rec *record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode habit: %w", err)
	}
	return txn.Set(habitKey(rec.ID.String()), data)
}

// records scans every habit value in position order.
func (s *Store) records() ([]*record, error) {
	var out []*record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(HabitPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			rec, err := decodeRecord(val)
			if err != nil {
				return fmt.Errorf("%s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// keysByPrefix lists the habit IDs whose key starts with HabitPrefix+idPrefix.
func (s *Store) keysByPrefix(idPrefix string) ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(HabitPrefix + idPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			ids = append(ids, string(bytes.TrimPrefix(key, []byte(HabitPrefix))))
		}
		return nil
	})
	return ids, err
}

func (s *Store) resolveID(idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", storage.ErrNotFound)
	}
	ids, err := s.keysByPrefix(strings.ToLower(idOrPrefix))
	if err != nil {
		return "", fmt.Errorf("resolve habit ID: %w", err)
	}
	return storage.MatchID(ids, strings.ToLower(idOrPrefix))
}

// CreateHabit stores a new habit at the end of the list.
func (s *Store) CreateHabit(h *models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(habitKey(h.ID.String())); err == nil {
			return fmt.Errorf("%s already exists", h.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		pos, err := nextPosition(txn)
		if err != nil {
			return err
		}
		return putRecord(txn, &record{Habit: h, Position: pos})
	})
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// GetHabit retrieves a habit by ID or ID prefix.
func (s *Store) GetHabit(idOrPrefix string) (*models.Habit, error) {
	id, err := s.resolveID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	var rec *record
	err = s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = getRecord(txn, id)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, idOrPrefix)
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return rec.Habit, nil
}

// ListHabits retrieves all habits in insertion order.
func (s *Store) ListHabits() ([]*models.Habit, error) {
	recs, err := s.records()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	habits := make([]*models.Habit, len(recs))
	for i, rec := range recs {
		habits[i] = rec.Habit
	}
	return habits, nil
}

// UpsertHabit replaces a stored habit in place or appends a new one.
func (s *Store) UpsertHabit(h *models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := getRecord(txn, h.ID.String())
		switch {
		case err == nil:
			return putRecord(txn, &record{Habit: h, Position: existing.Position})
		case errors.Is(err, badger.ErrKeyNotFound):
			pos, err := nextPosition(txn)
			if err != nil {
				return err
			}
			return putRecord(txn, &record{Habit: h, Position: pos})
		default:
			return err
		}
	})
	if err != nil {
		return fmt.Errorf("upsert habit: %w", err)
	}
	return nil
}

// DeleteHabit removes a habit by ID or prefix.
func (s *Store) DeleteHabit(idOrPrefix string) error {
	id, err := s.resolveID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(habitKey(id)); err != nil {
			return err
		}
		return txn.Delete(habitKey(id))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("delete habit: %w: %s", storage.ErrNotFound, idOrPrefix)
	}
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// GetLastReset returns the stored day-reset marker.
func (s *Store) GetLastReset() (string, bool, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(lastResetKey))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		value = string(val)
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get last reset: %w", err)
	}
	return value, true, nil
}

// SetLastReset stores the day-reset marker.
func (s *Store) SetLastReset(day string) error {
	c, ok := engine.Canonical(day)
	if !ok {
		return fmt.Errorf("set last reset: invalid day %q", day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(lastResetKey), []byte(c))
	})
	if err != nil {
		return fmt.Errorf("set last reset: %w", err)
	}
	return nil
}

// GetAllData retrieves all data for export.
func (s *Store) GetAllData() (*storage.ExportData, error) {
	return storage.CollectData(s)
}

// ImportData imports data from an export document.
func (s *Store) ImportData(data *storage.ExportData) error {
	return storage.ImportInto(s, data)
}

// badgerLogger adapts a charm logger to badger's Logger interface.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...any) {
	b.l.Errorf(strings.TrimSpace(format), args...)
}

func (b badgerLogger) Warningf(format string, args ...any) {
	b.l.Warnf(strings.TrimSpace(format), args...)
}

func (b badgerLogger) Infof(format string, args ...any) {
	b.l.Debugf(strings.TrimSpace(format), args...)
}

func (b badgerLogger) Debugf(format string, args ...any) {
	b.l.Debugf(strings.TrimSpace(format), args...)
}
