package model

import "time"

// HistoryTimeFormat is the timestamp layout used in persisted history.
const HistoryTimeFormat = "2006-01-02 15:04"

// HistoryEntry is one persisted record of a finished download.
type HistoryEntry struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Path    string `json:"path"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

// NewHistoryEntry creates a completed entry stamped with the current time.
func NewHistoryEntry(title, url, quality, path string) HistoryEntry {
	return HistoryEntry{
		Title:   title,
		URL:     url,
		Quality: quality,
		Path:    path,
		Date:    time.Now().Format(HistoryTimeFormat),
		Status:  "completed",
	}
}
