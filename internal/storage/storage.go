// Package storage provides thread-safe in-memory storage of scored trend
// snapshots with file-based persistence. History is rotated to prevent
// unbounded growth.
//
// Persistence uses atomic file writes (write temp, rename) so a crashed save
// never truncates the artifact downstream consumers read. The serving layer
// opens the same file read-only to answer queries.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fedwatch/fedwatch/internal/models"
)

// Record is one persisted aggregation outcome: the snapshot's trends plus
// the health score computed from them. It is the durable artifact consumed
// by the serving layer.
type Record struct {
	ID          string                           `json:"id"`
	Timestamp   time.Time                        `json:"timestamp"`
	Trends      map[string]models.RawCountResult `json:"trends"`
	Categories  []string                         `json:"categories"`
	HealthScore float64                          `json:"health_score"`
	Rating      string                           `json:"rating"`
}

// Validate checks that a record is well-formed before it is stored.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record ID must not be empty")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("record timestamp must be set")
	}
	if r.HealthScore < 0.0 || r.HealthScore > 100.0 {
		return fmt.Errorf("record health score must be between 0 and 100")
	}
	return nil
}

// Storage provides thread-safe in-memory record history with file-based
// persistence.
type Storage struct {
	mu      sync.RWMutex
	records []Record // oldest first

	maxRecords      int
	filePath        string
	filePermissions os.FileMode
	dirPermissions  os.FileMode
}

// PersistenceFile represents the file structure for JSON persistence
type PersistenceFile struct {
	Version string    `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Records []Record  `json:"records"`
}

// New creates a Storage persisting to filePath. If filePath is empty, an
// OS-appropriate tmp location is used.
func New(maxRecords int, filePath string) *Storage {
	if filePath == "" {
		filePath = filepath.Join(os.TempDir(), "fedwatch", "indeed_trends.json")
	}
	if maxRecords < 1 {
		maxRecords = 1
	}
	return &Storage{
		records:         make([]Record, 0),
		maxRecords:      maxRecords,
		filePath:        filePath,
		filePermissions: 0o644,
		dirPermissions:  0o755,
	}
}

// Append adds a record to the history, rotating out the oldest entries when
// the retention cap is exceeded.
func (s *Storage) Append(record Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	if len(s.records) > s.maxRecords {
		s.records = s.records[len(s.records)-s.maxRecords:]
	}
	return nil
}

// Latest returns the most recent record and whether one exists.
func (s *Storage) Latest() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// History returns up to n most recent records, newest first. n <= 0 returns
// the full history.
func (s *Storage) History(n int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.records) {
		n = len(s.records)
	}
	out := make([]Record, 0, n)
	for i := len(s.records) - 1; i >= len(s.records)-n; i-- {
		out = append(out, s.records[i])
	}
	return out
}

// Count returns the number of records currently held.
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Save persists storage state to file
func (s *Storage) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Create data directory if needed
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, s.dirPermissions); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data := PersistenceFile{
		Version: "1.0",
		SavedAt: time.Now(),
		Records: s.records,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Write to temporary file first (atomic write)
	tempPath := s.filePath + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, s.filePermissions); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	// Rename temp file to actual file
	if err := os.Rename(tempPath, s.filePath); err != nil {
		_ = os.Remove(tempPath) // Clean up temp file on rename failure
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Load restores storage state from file
func (s *Storage) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clean up any stale temp files from previous crashes
	tempPath := s.filePath + ".tmp"
	if _, err := os.Stat(tempPath); err == nil {
		_ = os.Remove(tempPath)
	}

	// No file yet means a fresh start, not an error.
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil
	}

	jsonData, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var data PersistenceFile
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	s.records = data.Records
	if s.records == nil {
		s.records = make([]Record, 0)
	}
	if len(s.records) > s.maxRecords {
		s.records = s.records[len(s.records)-s.maxRecords:]
	}

	return nil
}
