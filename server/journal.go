package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/promptstudio/promptstudio"
)

// operationRecord is one completed operation in a session's journal.
type operationRecord struct {
	Timestamp  time.Time `yaml:"timestamp"`
	Operation  string    `yaml:"operation"`
	OK         bool      `yaml:"ok"`
	Error      string    `yaml:"error,omitempty"`
	Stale      bool      `yaml:"stale,omitempty"`
	DurationMS int64     `yaml:"duration_ms"`
}

// journal appends one YAML record per completed operation. Records are
// marshalled as single-element sequences so the file stays a valid YAML list
// across appends.
type journal struct {
	mu   sync.Mutex
	path string
}

func newJournal(dir, sessionID string) (*journal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	return &journal{
		path: filepath.Join(dir, sessionID+".yaml"),
	}, nil
}

func (j *journal) record(ev promptstudio.Event) error {
	rec := operationRecord{
		Timestamp:  time.Now().UTC(),
		Operation:  string(ev.Kind),
		OK:         ev.Err == "" && !ev.Stale,
		Error:      ev.Err,
		Stale:      ev.Stale,
		DurationMS: ev.Duration.Milliseconds(),
	}

	out, err := yaml.Marshal([]operationRecord{rec})
	if err != nil {
		return fmt.Errorf("failed to marshal journal record: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	_, werr := f.Write(out)
	return errors.Join(werr, f.Close())
}
