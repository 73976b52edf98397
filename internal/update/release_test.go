package update

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return logger
}

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheckNewerVersionAvailable(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{
		"tag_name": "v2.1.0",
		"name": "Big release",
		"body": "- faster downloads",
		"published_at": "2024-08-01T00:00:00Z",
		"assets": [
			{"name": "SHTxd-Clip-Setup-2.1.0.exe", "browser_download_url": "https://example.com/setup.exe"}
		]
	}`)

	checker := NewReleaseChecker(server.URL, "2.0.0", testLogger())
	result := checker.Check()

	require.True(t, result.Available)
	assert.Equal(t, "2.1.0", result.LatestVersion)
	assert.Equal(t, "https://example.com/setup.exe", result.DownloadURL)
	assert.Equal(t, "- faster downloads", result.ReleaseNotes)
	assert.Equal(t, "Big release", result.ReleaseName)
	assert.Empty(t, result.Err)
}

func TestCheckAlreadyCurrent(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{"tag_name": "v2.0.0"}`)

	checker := NewReleaseChecker(server.URL, "2.0.0", testLogger())
	result := checker.Check()

	assert.False(t, result.Available)
	assert.Empty(t, result.Err)
}

func TestCheckOlderReleaseNotOffered(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{"tag_name": "v1.9.0"}`)

	checker := NewReleaseChecker(server.URL, "2.0.0", testLogger())
	assert.False(t, checker.Check().Available)
}

func TestCheckServerError(t *testing.T) {
	server := releaseServer(t, http.StatusForbidden, `{"message": "rate limited"}`)

	checker := NewReleaseChecker(server.URL, "1.0.0", testLogger())
	result := checker.Check()

	assert.False(t, result.Available)
	assert.NotEmpty(t, result.Err)
}

func TestCheckNetworkFailure(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{}`)
	url := server.URL
	server.Close()

	checker := NewReleaseChecker(url, "1.0.0", testLogger())
	result := checker.Check()

	assert.False(t, result.Available)
	assert.NotEmpty(t, result.Err)
}

func TestCheckCollapsesConcurrentCalls(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		fmt.Fprint(w, `{"tag_name": "v2.0.0"}`)
	}))
	defer server.Close()

	checker := NewReleaseChecker(server.URL, "1.0.0", testLogger())

	var started, wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		started.Add(1)
		wg.Add(1)
		go func() {
			started.Done()
			defer wg.Done()
			result := checker.Check()
			assert.True(t, result.Available)
		}()
	}
	started.Wait()
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestInstallerURLSelection(t *testing.T) {
	tests := []struct {
		name   string
		assets []Asset
		want   string
	}{
		{
			name: "exe preferred",
			assets: []Asset{
				{Name: "source.tar.gz", BrowserDownloadURL: "https://example.com/src"},
				{Name: "Clip.exe", BrowserDownloadURL: "https://example.com/exe"},
			},
			want: "https://example.com/exe",
		},
		{
			name:   "setup archive matches",
			assets: []Asset{{Name: "clip-setup.zip", BrowserDownloadURL: "https://example.com/setup"}},
			want:   "https://example.com/setup",
		},
		{
			name:   "installer keyword matches",
			assets: []Asset{{Name: "Clip-Installer.dmg", BrowserDownloadURL: "https://example.com/dmg"}},
			want:   "https://example.com/dmg",
		},
		{
			name:   "no installer asset",
			assets: []Asset{{Name: "source.tar.gz", BrowserDownloadURL: "https://example.com/src"}},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := installerURL(&Release{Assets: tt.assets})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDownloadUpdate(t *testing.T) {
	server := releaseServer(t, http.StatusOK, "installer bytes")

	checker := NewReleaseChecker(server.URL, "1.0.0", testLogger())
	dest := filepath.Join(t.TempDir(), "installer.exe")

	require.NoError(t, checker.DownloadUpdate(server.URL, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "installer bytes", string(data))
}

func TestDownloadUpdateRemovesPartialFile(t *testing.T) {
	server := releaseServer(t, http.StatusNotFound, "missing")

	checker := NewReleaseChecker(server.URL, "1.0.0", testLogger())
	dest := filepath.Join(t.TempDir(), "installer.exe")

	require.Error(t, checker.DownloadUpdate(server.URL, dest))

	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}
