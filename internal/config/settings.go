// Package config persists user settings and download history as flat JSON
// files in the user's home directory. Settings loads merge file contents
// over hardcoded defaults so missing keys never fail.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/platform"
)

// Settings keys
const (
	KeyDownloadPath     = "download_path"
	KeyTheme            = "theme"
	KeyDefaultQuality   = "default_quality"
	KeyWindowGeometry   = "window_geometry"
	KeyPlaylistQuantity = "playlist_quantity"
)

// Default values
const (
	DefaultTheme          = "dark"
	DefaultWindowGeometry = "900x750"
	SettingsFileName      = ".yt_downloader_settings.json"
)

// Settings manages application configuration backed by a flat JSON file.
type Settings struct {
	v    *viper.Viper
	path string
}

// NewSettings creates a settings manager for the given file path. An empty
// path falls back to SettingsFileName under the user's home directory.
func NewSettings(path string) *Settings {
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, SettingsFileName)
		} else {
			path = SettingsFileName
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	downloadDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		downloadDir = "downloads"
	}
	v.SetDefault(KeyDownloadPath, downloadDir)
	v.SetDefault(KeyTheme, DefaultTheme)
	v.SetDefault(KeyDefaultQuality, string(model.QualityBest))
	v.SetDefault(KeyWindowGeometry, DefaultWindowGeometry)
	v.SetDefault(KeyPlaylistQuantity, model.DefaultPlaylistQuantity)

	return &Settings{v: v, path: path}
}

// Load reads the settings file, merging its contents over the defaults. A
// missing file is not an error; the defaults simply stand.
func (s *Settings) Load() error {
	if err := s.v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to load settings: %w", err)
	}
	return nil
}

// Save writes the current settings to the file, creating parent directories
// as needed.
func (s *Settings) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := platform.EnsureDirectoryExists(dir); err != nil {
			return err
		}
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// DownloadPath returns the configured download directory.
func (s *Settings) DownloadPath() string {
	return s.v.GetString(KeyDownloadPath)
}

// SetDownloadPath sets the download directory.
func (s *Settings) SetDownloadPath(path string) {
	s.v.Set(KeyDownloadPath, path)
}

// Theme returns the configured theme name.
func (s *Settings) Theme() string {
	return s.v.GetString(KeyTheme)
}

// SetTheme sets the theme name.
func (s *Settings) SetTheme(theme string) {
	s.v.Set(KeyTheme, theme)
}

// DefaultQuality returns the configured default quality preset. An
// unrecognized persisted value falls back to the best preset.
func (s *Settings) DefaultQuality() model.Quality {
	q := model.Quality(s.v.GetString(KeyDefaultQuality))
	if !q.IsValid() {
		return model.QualityBest
	}
	return q
}

// SetDefaultQuality sets the default quality preset.
func (s *Settings) SetDefaultQuality(q model.Quality) {
	s.v.Set(KeyDefaultQuality, string(q))
}

// WindowGeometry returns the persisted window geometry string.
func (s *Settings) WindowGeometry() string {
	return s.v.GetString(KeyWindowGeometry)
}

// SetWindowGeometry sets the window geometry string.
func (s *Settings) SetWindowGeometry(geometry string) {
	s.v.Set(KeyWindowGeometry, geometry)
}

// PlaylistQuantity returns the configured playlist quantity ("All" or a
// numeric string).
func (s *Settings) PlaylistQuantity() string {
	return s.v.GetString(KeyPlaylistQuantity)
}

// SetPlaylistQuantity sets the playlist quantity.
func (s *Settings) SetPlaylistQuantity(quantity string) {
	s.v.Set(KeyPlaylistQuantity, quantity)
}
