package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureDirectoryExists(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "a", "b", "c")

	if err := EnsureDirectoryExists(nested); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("directory should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}

	// Second call on an existing directory is a no-op.
	if err := EnsureDirectoryExists(nested); err != nil {
		t.Errorf("expected no error on existing directory, got %v", err)
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean name unchanged", input: "My Video.mp4", expected: "My Video.mp4"},
		{name: "unsafe chars replaced", input: `a<b>c:d"e/f\g|h?i*j`, expected: "a_b_c_d_e_f_g_h_i_j"},
		{name: "surrounding space trimmed", input: "  video  ", expected: "video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFilename(tt.input); got != tt.expected {
				t.Errorf("SafeFilename(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeFilenameLengthCap(t *testing.T) {
	long := strings.Repeat("x", 300)
	if got := SafeFilename(long); len(got) != MaxFilenameLength {
		t.Errorf("expected length %d, got %d", MaxFilenameLength, len(got))
	}
}

func TestCheckDependency(t *testing.T) {
	// "go" must be present wherever these tests run.
	if !CheckDependency("go") {
		t.Error("expected 'go' to be found on PATH")
	}
	if CheckDependency("definitely-not-a-real-tool-xyz") {
		t.Error("expected missing tool to be reported as unavailable")
	}
}

func TestFormatDependencyError(t *testing.T) {
	msg := FormatDependencyError([]string{"yt-dlp", "ffmpeg"})

	if !strings.Contains(msg, "yt-dlp") || !strings.Contains(msg, "ffmpeg") {
		t.Errorf("message should name both tools: %q", msg)
	}
	if !strings.Contains(msg, "pip install yt-dlp") {
		t.Errorf("message should carry install hints: %q", msg)
	}
}
