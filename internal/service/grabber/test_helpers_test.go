package grabber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/akovalenko/spotify-grabber/internal/client/spotify"
	mock_spotify "github.com/akovalenko/spotify-grabber/internal/client/spotify/mocks"
	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/constants"
)

// mockTagProcessor is a mock implementation of the TagProcessor interface.
type mockTagProcessor struct {
	mu    sync.Mutex
	calls []*WriteTagsRequest
	err   error
}

func (m *mockTagProcessor) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	return m.err
}

// fakeFetcher is a scriptable implementation of the Fetcher interface.
// handler receives the 1-based call number and may create files in req.OutputDir.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []*FetchRequest
	handler func(call int, req *FetchRequest) error
}

func (f *fakeFetcher) Fetch(_ context.Context, req *FetchRequest) error {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	call := len(f.calls)
	handler := f.handler
	f.mu.Unlock()

	if handler == nil {
		return nil
	}

	return handler(call, req)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// progressRecorder captures progress callback invocations.
type progressRecorder struct {
	mu      sync.Mutex
	entries []progressEntry
}

type progressEntry struct {
	completed int
	total     int
	trackID   string
}

func (p *progressRecorder) record(completed, total int, track *spotify.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = append(p.entries, progressEntry{completed: completed, total: total, trackID: track.ID})
}

func (p *progressRecorder) recorded() []progressEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]progressEntry(nil), p.entries...)
}

// testDownloadSetup encapsulates common test dependencies and configuration.
type testDownloadSetup struct {
	ctrl         *gomock.Controller
	mockClient   *mock_spotify.MockClient
	fetcher      *fakeFetcher
	tagProcessor *mockTagProcessor
	progress     *progressRecorder
	service      Service
	config       *config.Config
	tempDir      string
}

// newTestDownloadSetup creates a standard test setup with optional config overrides.
func newTestDownloadSetup(t *testing.T, configOverrides ...func(*config.Config)) *testDownloadSetup {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockClient := mock_spotify.NewMockClient(ctrl)
	tempDir := t.TempDir()

	cfg := &config.Config{
		OutputPath:             tempDir,
		Quality:                "320k",
		ReportFilename:         config.DefaultReportFilename,
		SearchQueryTemplate:    config.DefaultSearchQueryTemplate,
		TrackFilenameTemplate:  config.DefaultTrackFilenameTemplate,
		RetryAttemptsCount:     3,
		ReplaceTracks:          false,
		WriteTags:              false,
		ParsedMinRetryPause:    time.Millisecond,
		ParsedMaxRetryPause:    2 * time.Millisecond,
		ParsedMaxDownloadPause: time.Millisecond,
	}

	// Apply overrides.
	for _, override := range configOverrides {
		override(cfg)
	}

	var (
		fetcher      = &fakeFetcher{}
		tagProcessor = &mockTagProcessor{}
		progress     = &progressRecorder{}
		ctx          = context.Background()
	)

	service := NewService(
		cfg,
		mockClient,
		NewURLProcessor(),
		NewTemplateManager(ctx, cfg),
		tagProcessor,
		fetcher,
		progress.record,
	)

	return &testDownloadSetup{
		ctrl:         ctrl,
		mockClient:   mockClient,
		fetcher:      fetcher,
		tagProcessor: tagProcessor,
		progress:     progress,
		service:      service,
		config:       cfg,
		tempDir:      tempDir,
	}
}

// cleanup releases test resources.
func (s *testDownloadSetup) cleanup() {
	s.ctrl.Finish()
}

// testTrack builds a playlist track with sensible defaults.
func testTrack(id, title, artist string) *spotify.Track {
	return &spotify.Track{
		ID:          id,
		Title:       title,
		Artists:     []string{artist},
		Album:       "Test Album",
		TrackNumber: 1,
		ReleaseYear: "2024",
		DurationMS:  210000,
	}
}

// testPlaylist builds a playlist from the given tracks.
func testPlaylist(tracks ...*spotify.Track) *spotify.Playlist {
	return &spotify.Playlist{
		ID:     "37i9dQZF1DXcBWIGoYBM5M",
		Name:   "Test Playlist",
		Tracks: tracks,
	}
}

// testPlaylistURL is a well-formed playlist URL resolving to "37i9dQZF1DXcBWIGoYBM5M".
const testPlaylistURL = "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M"

// writeTrackFile creates an MP3 file for the track in the output directory.
func writeTrackFile(t *testing.T, dir, artist, title string) string {
	t.Helper()

	path := filepath.Join(dir, fmt.Sprintf("%s - %s%s", artist, title, constants.ExtensionMP3))
	require.NoError(t, os.WriteFile(path, []byte("fake audio data"), constants.DefaultFilePermissions))

	return path
}

// fetcherWritesFile returns a handler that creates the expected file for each fetched query.
// The query format is "<title> <artist> <album>", so the handler takes explicit names per call.
func fetcherWritesFile(t *testing.T, files map[int][2]string) func(call int, req *FetchRequest) error {
	t.Helper()

	return func(call int, req *FetchRequest) error {
		names, ok := files[call]
		if !ok {
			return nil
		}

		writeTrackFile(t, req.OutputDir, names[0], names[1])

		return nil
	}
}

// readReport reads and parses the report file from the output directory.
func readReport(t *testing.T, dir, filename string) *DownloadReport {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var report DownloadReport
	require.NoError(t, json.Unmarshal(data, &report))

	return &report
}
