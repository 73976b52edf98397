package update

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/version"
)

// Bundled tool layout and bounds.
const (
	DefaultToolBinary = "yt-dlp"

	toolReleaseAPI = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

	// moduleDirName is the directory swapped out during a bundled upgrade;
	// moduleMarkerFile identifies it inside an extracted release archive.
	moduleDirName    = "yt_dlp"
	moduleMarkerFile = "__init__.py"

	VersionTimeout    = 10 * time.Second
	SelfUpdateTimeout = 5 * time.Minute
)

// ToolUpdater checks and upgrades the yt-dlp tool itself. When the
// application ships a bundled copy (moduleDir set), Apply replaces the
// bundled module directory from a release archive with backup and restore.
// Otherwise the tool is managed externally and Apply is a no-op.
type ToolUpdater struct {
	binary    string
	moduleDir string
	apiURL    string
	client    *http.Client
	logger    *log.Logger
}

// NewToolUpdater creates an updater for the yt-dlp installation next to
// the running executable, if one exists. Absent a bundled copy the updater
// operates in external mode: checks work, Apply succeeds without action.
func NewToolUpdater(logger *log.Logger) *ToolUpdater {
	u := &ToolUpdater{
		binary: DefaultToolBinary,
		apiURL: toolReleaseAPI,
		client: &http.Client{Timeout: CheckTimeout},
		logger: logger,
	}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), moduleDirName)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			u.moduleDir = dir
		}
	}
	return u
}

// SetBinary overrides the tool executable name or path.
func (u *ToolUpdater) SetBinary(binary string) { u.binary = binary }

// SetModuleDir overrides the bundled module directory. An empty string
// switches the updater to external mode.
func (u *ToolUpdater) SetModuleDir(dir string) { u.moduleDir = dir }

// SetReleaseURL overrides the release feed endpoint.
func (u *ToolUpdater) SetReleaseURL(apiURL string) { u.apiURL = apiURL }

// Bundled reports whether the updater manages a bundled tool copy.
func (u *ToolUpdater) Bundled() bool { return u.moduleDir != "" }

// CurrentVersion asks the installed tool for its version string.
func (u *ToolUpdater) CurrentVersion() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), VersionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, u.binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to read %s version: %w", u.binary, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CheckLatest compares the installed tool version against its release feed.
func (u *ToolUpdater) CheckLatest() Result {
	current, err := u.CurrentVersion()
	if err != nil {
		u.logger.Warn("tool version probe failed", "err", err)
		return Result{Err: err.Error()}
	}

	release, err := fetchRelease(u.client, u.apiURL)
	if err != nil {
		u.logger.Warn("tool update check failed", "err", err)
		return Result{Err: err.Error()}
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if !version.IsNewer(current, latest) {
		return Result{LatestVersion: latest}
	}
	return Result{
		Available:     true,
		LatestVersion: latest,
		DownloadURL:   archiveURL(release),
		ReleaseNotes:  release.Body,
		ReleaseDate:   release.PublishedAt,
		ReleaseName:   release.Name,
	}
}

// Apply upgrades the bundled tool copy to the given release archive.
// Without a bundled copy there is nothing to manage and Apply succeeds.
func (u *ToolUpdater) Apply(result Result) error {
	if !u.Bundled() {
		u.logger.Debug("tool managed externally, nothing to apply")
		return nil
	}
	if !result.Available {
		return nil
	}
	if result.DownloadURL == "" {
		return fmt.Errorf("release %s has no downloadable archive", result.LatestVersion)
	}

	workDir, err := os.MkdirTemp("", "ytdlp-update-")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	archivePath := filepath.Join(workDir, "release.zip")
	if err := downloadFile(u.logger, result.DownloadURL, archivePath); err != nil {
		return err
	}

	extractDir := filepath.Join(workDir, "extracted")
	if err := extractZip(archivePath, extractDir); err != nil {
		return err
	}

	newModule, err := findModuleDir(extractDir)
	if err != nil {
		return err
	}
	return u.swapModuleDir(newModule)
}

// SelfUpdate runs the tool's own upgrade command. Used when the tool was
// installed system-wide and can replace itself in place.
func (u *ToolUpdater) SelfUpdate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, SelfUpdateTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, u.binary, "-U").CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s -U failed: %w: %s", u.binary, err, strings.TrimSpace(string(out)))
	}
	u.logger.Info("tool self-update finished", "output", strings.TrimSpace(string(out)))
	return nil
}

// swapModuleDir replaces the bundled module directory with newModule,
// keeping the previous copy as a backup. A failed install restores the
// backup so the tool never ends up half-replaced.
func (u *ToolUpdater) swapModuleDir(newModule string) error {
	backup := u.moduleDir + ".backup"
	os.RemoveAll(backup)

	if _, err := os.Stat(u.moduleDir); err == nil {
		if err := os.Rename(u.moduleDir, backup); err != nil {
			return fmt.Errorf("failed to back up module directory: %w", err)
		}
	}

	if err := copyDir(newModule, u.moduleDir); err != nil {
		os.RemoveAll(u.moduleDir)
		if restoreErr := os.Rename(backup, u.moduleDir); restoreErr != nil {
			return fmt.Errorf("failed to install update and to restore backup: %w", restoreErr)
		}
		return fmt.Errorf("failed to install update, backup restored: %w", err)
	}

	u.logger.Info("bundled tool updated", "dir", u.moduleDir)
	return nil
}

// archiveURL picks the source archive from a tool release, falling back to
// the autogenerated zipball.
func archiveURL(release *Release) string {
	for _, asset := range release.Assets {
		name := strings.ToLower(asset.Name)
		if strings.Contains(name, moduleDirName) && strings.HasSuffix(name, ".zip") {
			return asset.BrowserDownloadURL
		}
	}
	return release.ZipballURL
}

// findModuleDir locates the tool module inside an extracted archive by its
// marker file.
func findModuleDir(root string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == moduleDirName {
			if _, statErr := os.Stat(filepath.Join(path, moduleMarkerFile)); statErr == nil {
				found = path
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan extracted archive: %w", err)
	}
	if found == "" {
		return "", fmt.Errorf("archive does not contain a %s module", moduleDirName)
	}
	return found, nil
}

// extractZip unpacks archivePath under destDir, rejecting entries that
// escape the destination.
func extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		target := filepath.Join(destDir, filepath.FromSlash(file.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(file, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(file *zip.File, target string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// copyDir copies src into dst recursively. Updates cross from a temp
// directory into the install directory, so a plain rename can fail across
// filesystems.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, info.Mode())
	})
}
