// Package update implements the two update flows: checking the
// application's own release feed and upgrading the bundled yt-dlp tool.
// Both compare versions with the internal/version comparator and report
// failures as values, never as panics or raised errors across the core/UI
// boundary.
package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/version"
)

// HTTP bounds
const (
	CheckTimeout    = 10 * time.Second
	DownloadTimeout = 30 * time.Minute

	userAgent = "SHTxd-Clip-Updater/1.0"
)

// Release mirrors the GitHub releases-API shape.
type Release struct {
	TagName     string  `json:"tag_name"`
	Name        string  `json:"name"`
	Body        string  `json:"body"`
	PublishedAt string  `json:"published_at"`
	Assets      []Asset `json:"assets"`
	ZipballURL  string  `json:"zipball_url"`
}

// Asset is one downloadable artifact attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Result reports the outcome of an update check. Network failures arrive
// here as Available=false plus Err, never as an exception to the caller.
type Result struct {
	Available     bool
	LatestVersion string
	DownloadURL   string
	ReleaseNotes  string
	ReleaseDate   string
	ReleaseName   string
	Err           string
}

// ReleaseChecker polls one HTTPS release feed and compares against a known
// current version. Concurrent Check calls are collapsed into one request.
type ReleaseChecker struct {
	apiURL         string
	currentVersion string
	client         *http.Client
	logger         *log.Logger
	group          singleflight.Group
}

// NewReleaseChecker creates a checker for the given releases-API endpoint.
func NewReleaseChecker(apiURL, currentVersion string, logger *log.Logger) *ReleaseChecker {
	return &ReleaseChecker{
		apiURL:         apiURL,
		currentVersion: currentVersion,
		client:         &http.Client{Timeout: CheckTimeout},
		logger:         logger,
	}
}

// SetAPIURL overrides the release feed endpoint.
func (c *ReleaseChecker) SetAPIURL(apiURL string) { c.apiURL = apiURL }

// Check fetches the latest release descriptor and reports whether it is
// strictly newer than the current version.
func (c *ReleaseChecker) Check() Result {
	v, _, _ := c.group.Do("check", func() (interface{}, error) {
		return c.check(), nil
	})
	return v.(Result)
}

func (c *ReleaseChecker) check() Result {
	release, err := fetchRelease(c.client, c.apiURL)
	if err != nil {
		c.logger.Warn("update check failed", "url", c.apiURL, "err", err)
		return Result{Err: err.Error()}
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if !version.IsNewer(c.currentVersion, latest) {
		return Result{}
	}

	name := release.Name
	if name == "" {
		name = fmt.Sprintf("Version %s", latest)
	}
	return Result{
		Available:     true,
		LatestVersion: latest,
		DownloadURL:   installerURL(release),
		ReleaseNotes:  release.Body,
		ReleaseDate:   release.PublishedAt,
		ReleaseName:   name,
	}
}

// DownloadUpdate streams a release artifact to the given path.
func (c *ReleaseChecker) DownloadUpdate(url, savePath string) error {
	return downloadFile(c.logger, url, savePath)
}

// fetchRelease GETs and decodes one releases-API document.
func fetchRelease(client *http.Client, apiURL string) (*Release, error) {
	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create release request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release request failed with status %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release JSON: %w", err)
	}
	return &release, nil
}

// installerURL picks the installer artifact from the release assets:
// a Windows installer or portable executable.
func installerURL(release *Release) string {
	for _, asset := range release.Assets {
		name := strings.ToLower(asset.Name)
		if strings.HasSuffix(name, ".exe") || strings.Contains(name, "setup") || strings.Contains(name, "installer") {
			return asset.BrowserDownloadURL
		}
	}
	return ""
}

// downloadFile streams url to destPath, removing the partial file on error.
func downloadFile(logger *log.Logger, url, destPath string) error {
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer out.Close()

	client := &http.Client{Timeout: DownloadTimeout}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Remove(destPath)
		return fmt.Errorf("download request failed with status %s", resp.Status)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		os.Remove(destPath)
		return fmt.Errorf("download stream error: %w", err)
	}
	logger.Debug("artifact downloaded", "url", url, "bytes", written)
	return nil
}
