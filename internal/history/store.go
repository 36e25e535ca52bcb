// Package history is the append-only search-history log. Each pipeline run
// appends one flattened summary; reads return a snapshot copy so repeat-
// player aggregation never observes a partially written list. Appends and
// reads serialize under a single store-scoped lock.
package history

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"compintel/server/internal/models"
)

// Store is the injected append-only log abstraction.
type Store interface {
	Append(rec *models.SearchRecord) error
	Snapshot() ([]models.SearchRecord, error)
}

// SQLiteStore persists the log in a sqlite database.
type SQLiteStore struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.AutoMigrate(&models.SearchRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(rec *models.SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to append search record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Snapshot() ([]models.SearchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []models.SearchRecord
	if err := s.db.Order("id asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}
	return records, nil
}

// MemoryStore is an in-process store for tests and stubbed deployments.
type MemoryStore struct {
	mu      sync.Mutex
	records []models.SearchRecord
	nextID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(rec *models.SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, *rec)
	return nil
}

func (s *MemoryStore) Snapshot() ([]models.SearchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.SearchRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// RepeatPlayers aggregates primary-party mentions across the whole log and
// returns parties seen on at least minProperties distinct properties, ordered
// by count descending then name.
func RepeatPlayers(store Store, minProperties int) ([]models.RepeatPlayer, error) {
	records, err := store.Snapshot()
	if err != nil {
		return nil, err
	}

	type roleKey struct{ role, name string }
	seen := map[roleKey]map[string]bool{}
	// Dedupe is case-insensitive but the first-seen spelling is what gets
	// reported.
	display := map[roleKey]string{}

	add := func(role, name, address string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := roleKey{role, strings.ToUpper(name)}
		if seen[key] == nil {
			seen[key] = map[string]bool{}
			display[key] = name
		}
		seen[key][address] = true
	}

	for _, rec := range records {
		add("contractor", rec.PrimaryGC, rec.Address)
		add("architect", rec.PrimaryArchitect, rec.Address)
		add("engineer", rec.PrimaryEngineer, rec.Address)
	}

	var players []models.RepeatPlayer
	for key, addresses := range seen {
		if len(addresses) < minProperties {
			continue
		}
		players = append(players, models.RepeatPlayer{
			Role:       key.role,
			Name:       display[key],
			Properties: len(addresses),
		})
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Properties != players[j].Properties {
			return players[i].Properties > players[j].Properties
		}
		if players[i].Role != players[j].Role {
			return players[i].Role < players[j].Role
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}
