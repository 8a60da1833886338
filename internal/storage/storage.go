package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/guillerg01/date-checker/internal/dates"
)

const notifiedFile = "notified.json"

// Store handles persistence of the notified-findings log.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, expanding a leading ~/ and creating
// the directory if needed.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

// NotifiedLog records when each finding key was first alerted.
type NotifiedLog struct {
	Notified  map[string]string `json:"notified"` // finding key → RFC3339 first-notified
	UpdatedAt string            `json:"updated_at"`
}

// NewNotifiedLog creates an empty log.
func NewNotifiedLog() *NotifiedLog {
	return &NotifiedLog{Notified: make(map[string]string)}
}

func (s *Store) logPath() string {
	return filepath.Join(s.dataDir, notifiedFile)
}

// Load reads the notified log from disk; a missing file yields an empty log.
func (s *Store) Load() (*NotifiedLog, error) {
	data, err := os.ReadFile(s.logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewNotifiedLog(), nil
		}
		return nil, fmt.Errorf("reading notified log: %w", err)
	}

	var log NotifiedLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("parsing notified log: %w", err)
	}
	if log.Notified == nil {
		log.Notified = make(map[string]string)
	}
	return &log, nil
}

// Save writes the notified log to disk with a fresh updated timestamp.
func (s *Store) Save(log *NotifiedLog) error {
	log.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding notified log: %w", err)
	}
	if err := os.WriteFile(s.logPath(), data, 0644); err != nil {
		return fmt.Errorf("writing notified log: %w", err)
	}
	return nil
}

// FilterNew returns the findings whose keys have not been alerted yet, in
// their original order.
func (s *Store) FilterNew(findings []dates.Finding) ([]dates.Finding, error) {
	log, err := s.Load()
	if err != nil {
		return nil, err
	}

	fresh := make([]dates.Finding, 0, len(findings))
	for _, f := range findings {
		if _, seen := log.Notified[f.Key()]; !seen {
			fresh = append(fresh, f)
		}
	}
	return fresh, nil
}

// MarkNotified records the findings as alerted and persists the log.
func (s *Store) MarkNotified(findings []dates.Finding) error {
	log, err := s.Load()
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, f := range findings {
		if _, seen := log.Notified[f.Key()]; !seen {
			log.Notified[f.Key()] = now
		}
	}
	return s.Save(log)
}
