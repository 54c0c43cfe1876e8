package storage

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/Candy007Surya/NiftyNavigatorAgent/internal/models"

	"github.com/shopspring/decimal"
)

// Store persists the position list as a JSON array in a single file.
//
// All mutations go through the Store's mutex, so concurrent chat handlers
// and the alert loop never interleave a load-append-save cycle. Reads of a
// missing or unreadable file are treated as an empty list, never an error.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all positions. Absence or parse failure yields an empty slice.
func (s *Store) Load() []models.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() []models.Position {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read %s, treating as empty: %v", s.path, err)
		}
		return []models.Position{}
	}

	var positions []models.Position
	if err := json.Unmarshal(b, &positions); err != nil {
		log.Printf("Warning: corrupt positions file %s, treating as empty: %v", s.path, err)
		return []models.Position{}
	}
	if positions == nil {
		positions = []models.Position{}
	}
	return positions
}

// Save overwrites the whole position list using an atomic write pattern:
// write to a temp file, sync, then rename over the destination.
func (s *Store) Save(positions []models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(positions)
}

func (s *Store) saveLocked(positions []models.Position) error {
	b, err := json.MarshalIndent(positions, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	// Close before renaming (essential on Windows)
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// Add appends a new position with the current UTC timestamp.
func (s *Store) Add(symbol string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.loadLocked()
	positions = append(positions, models.NewPosition(symbol, price))
	return s.saveLocked(positions)
}

// Clear resets the store to an empty list. Used when a fresh monitoring
// window starts.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked([]models.Position{})
}
