package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/ludo/game/engine"
)

// Record is the transcript of one session as written to disk. It is a log
// for reading back what happened, not a saved game: sessions cannot be
// resumed from it.
type Record struct {
	ID        string              `json:"id"`
	Config    *engine.GameConfig  `json:"config"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Turns     []engine.TurnResult `json:"turns"`
	Final     *engine.Snapshot    `json:"final"`
}

// FileRecorder writes one JSON transcript per session into a directory.
type FileRecorder struct {
	dir     string
	mu      sync.Mutex
	records map[string]*Record
}

// NewFileRecorder creates the record directory if needed.
func NewFileRecorder(dir string) (*FileRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records directory: %w", err)
	}
	return &FileRecorder{dir: dir, records: make(map[string]*Record)}, nil
}

// Track returns a listener that appends every turn of s to its transcript.
func (fr *FileRecorder) Track(s *Session) Listener {
	fr.mu.Lock()
	fr.records[s.ID] = &Record{
		ID:        s.ID,
		Config:    s.Config,
		CreatedAt: s.CreatedAt,
		Turns:     []engine.TurnResult{},
	}
	fr.mu.Unlock()

	return ListenerFunc(func(result *engine.TurnResult, snap *engine.Snapshot) {
		if err := fr.append(s.ID, result, snap); err != nil {
			log.Warn().Err(err).Str("session", s.ID).Msg("failed to write session record")
		}
	})
}

func (fr *FileRecorder) append(id string, result *engine.TurnResult, snap *engine.Snapshot) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	record, ok := fr.records[id]
	if !ok {
		return ErrSessionNotFound
	}
	record.Turns = append(record.Turns, *result)
	record.Final = snap
	record.UpdatedAt = time.Now()

	return fr.write(record)
}

func (fr *FileRecorder) write(record *Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	// Write then rename so readers never see a partial file
	path := fr.path(record.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}

// Load reads a transcript by session ID
func (fr *FileRecorder) Load(id string) (*Record, error) {
	data, err := os.ReadFile(fr.path(id))
	if os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return &record, nil
}

// ListAll returns the IDs of every transcript in the directory
func (fr *FileRecorder) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fr.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read records directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	return ids, nil
}

// Exists checks if a transcript exists
func (fr *FileRecorder) Exists(id string) bool {
	_, err := os.Stat(fr.path(id))
	return err == nil
}

// Delete removes a transcript
func (fr *FileRecorder) Delete(id string) error {
	if !fr.Exists(id) {
		return ErrSessionNotFound
	}
	if err := os.Remove(fr.path(id)); err != nil {
		return fmt.Errorf("failed to remove session record: %w", err)
	}

	fr.mu.Lock()
	delete(fr.records, id)
	fr.mu.Unlock()
	return nil
}

func (fr *FileRecorder) path(id string) string {
	return filepath.Join(fr.dir, fmt.Sprintf("%s.json", id))
}
