package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Folder-opening commands per OS
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Filename limits
const (
	MaxFilenameLength = 255
)

// Characters replaced when building a safe filename
var unsafeFilenameChars = []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*"}

// RequiredDependencies maps the external tools the downloader needs to
// install hints shown when they are missing.
var RequiredDependencies = map[string]string{
	"yt-dlp": "pip install yt-dlp",
	"ffmpeg": "Download from https://ffmpeg.org/",
}

// EnsureDirectoryExists creates the directory (and parents) if needed.
func EnsureDirectoryExists(dirPath string) error {
	if err := os.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// OpenFolder opens the directory in the system file manager.
func OpenFolder(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// GetHomeDownloadsDir returns the Downloads directory under the user's home.
func GetHomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// SafeFilename replaces characters that are unsafe in file names and caps
// the length at MaxFilenameLength.
func SafeFilename(filename string) string {
	safe := filename
	for _, c := range unsafeFilenameChars {
		safe = strings.ReplaceAll(safe, c, "_")
	}
	if len(safe) > MaxFilenameLength {
		safe = safe[:MaxFilenameLength]
	}
	return strings.TrimSpace(safe)
}

// CheckDependency reports whether a command-line tool is available on PATH.
func CheckDependency(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}

// MissingDependencies returns the required tools that are not on PATH.
func MissingDependencies() []string {
	var missing []string
	for dep := range RequiredDependencies {
		if !CheckDependency(dep) {
			missing = append(missing, dep)
		}
	}
	return missing
}

// FormatDependencyError builds a human-readable message listing missing
// tools and how to install them.
func FormatDependencyError(missing []string) string {
	var instructions []string
	for _, dep := range missing {
		if hint, ok := RequiredDependencies[dep]; ok {
			instructions = append(instructions, fmt.Sprintf("- %s: %s", dep, hint))
		}
	}
	return fmt.Sprintf("Missing dependencies: %s\n\nPlease install:\n%s",
		strings.Join(missing, ", "), strings.Join(instructions, "\n"))
}
