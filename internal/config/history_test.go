package config

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
)

func historyPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.json")
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(historyPath(t))

	entries, err := h.Load()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestHistoryAddAndReload(t *testing.T) {
	h := NewHistory(historyPath(t))

	entry := model.NewHistoryEntry("Some Video", "https://youtu.be/abc", "best", "/dl/video.mp4")
	require.NoError(t, h.Add(entry))

	entries, err := h.Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Some Video", entries[0].Title)
	require.Equal(t, "completed", entries[0].Status)
	require.NotEmpty(t, entries[0].Date)
}

func TestHistoryCapDropsOldest(t *testing.T) {
	h := NewHistory(historyPath(t))

	for i := 0; i < MaxHistoryEntries+10; i++ {
		entry := model.NewHistoryEntry(fmt.Sprintf("Video %d", i), "url", "best", "path")
		require.NoError(t, h.Add(entry))
	}

	entries, err := h.Load()
	require.NoError(t, err)
	require.Len(t, entries, MaxHistoryEntries)

	// The newest entries survive; the oldest are silently dropped.
	require.Equal(t, "Video 10", entries[0].Title)
	require.Equal(t, fmt.Sprintf("Video %d", MaxHistoryEntries+9), entries[len(entries)-1].Title)
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(historyPath(t))

	require.NoError(t, h.Add(model.NewHistoryEntry("V", "u", "best", "p")))
	require.NoError(t, h.Clear())

	entries, err := h.Load()
	require.NoError(t, err)
	require.Empty(t, entries)

	// Clearing an already-missing file is fine.
	require.NoError(t, h.Clear())
}
