package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/platform"
)

// History persistence
const (
	HistoryFileName   = ".yt_downloader_history.json"
	MaxHistoryEntries = 50

	historyFilePerm = 0644
)

// History manages the persisted download log: a JSON array capped to the
// newest MaxHistoryEntries on every save, oldest entries silently dropped.
type History struct {
	path       string
	maxEntries int
}

// NewHistory creates a history manager for the given file path. An empty
// path falls back to HistoryFileName under the user's home directory.
func NewHistory(path string) *History {
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, HistoryFileName)
		} else {
			path = HistoryFileName
		}
	}
	return &History{path: path, maxEntries: MaxHistoryEntries}
}

// Load reads the history file. A missing file yields an empty history.
func (h *History) Load() ([]model.HistoryEntry, error) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}

// Save writes the entries to the file, keeping only the newest maxEntries.
func (h *History) Save(entries []model.HistoryEntry) error {
	if len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}

	if dir := filepath.Dir(h.path); dir != "." {
		if err := platform.EnsureDirectoryExists(dir); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(h.path, data, historyFilePerm); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Add appends an entry and persists the capped result.
func (h *History) Add(entry model.HistoryEntry) error {
	entries, err := h.Load()
	if err != nil {
		return err
	}
	return h.Save(append(entries, entry))
}

// Clear removes the history file.
func (h *History) Clear() error {
	if err := os.Remove(h.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
