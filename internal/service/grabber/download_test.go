package grabber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/akovalenko/spotify-grabber/internal/client/spotify"
	"github.com/akovalenko/spotify-grabber/internal/config"
)

// TestDownloadPlaylists_HappyPath tests a full run where every track is acquired first try.
func TestDownloadPlaylists_HappyPath(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	trackA := testTrack("idA", "Don't Stop Me Now", "Queen")
	trackB := testTrack("idB", "Under Pressure", "Queen")
	trackC := testTrack("idC", "Radio Ga Ga", "Queen")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(trackA, trackB, trackC), nil)

	setup.fetcher.handler = fetcherWritesFile(t, map[int][2]string{
		1: {"Queen", "Don't Stop Me Now"},
		2: {"Queen", "Under Pressure"},
		3: {"Queen", "Radio Ga Ga"},
	})

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	report := readReport(t, setup.tempDir, setup.config.ReportFilename)

	assert.Equal(t, "37i9dQZF1DXcBWIGoYBM5M", report.PlaylistID)
	assert.Equal(t, "Test Playlist", report.PlaylistName)
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.Interrupted)
	assert.Equal(t, 3, report.TotalTracks)
	assert.Empty(t, report.Failed)

	require.Len(t, report.Succeeded, 3)

	for _, result := range report.Succeeded {
		assert.True(t, result.Succeeded)
		assert.False(t, result.AlreadyExisted)
		assert.Equal(t, int64(1), result.AttemptCount)
		assert.Equal(t, int64(210000), result.DurationMS)
		assert.Empty(t, result.Error)
		assert.FileExists(t, result.FilePath)
	}

	// Results stay in playlist order.
	assert.Equal(t, "idA", report.Succeeded[0].TrackID)
	assert.Equal(t, "idB", report.Succeeded[1].TrackID)
	assert.Equal(t, "idC", report.Succeeded[2].TrackID)

	// Progress is reported once per track with a growing completed counter.
	entries := setup.progress.recorded()
	require.Len(t, entries, 3)
	assert.Equal(t, progressEntry{completed: 1, total: 3, trackID: "idA"}, entries[0])
	assert.Equal(t, progressEntry{completed: 2, total: 3, trackID: "idB"}, entries[1])
	assert.Equal(t, progressEntry{completed: 3, total: 3, trackID: "idC"}, entries[2])
}

// TestDownloadPlaylists_RetryThenSuccess tests that a failed attempt is retried
// and the attempt count reflects all attempts made.
func TestDownloadPlaylists_RetryThenSuccess(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	track := testTrack("idA", "Under Pressure", "Queen")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(track), nil)

	setup.fetcher.handler = func(call int, req *FetchRequest) error {
		if call == 1 {
			return ErrAcquisition
		}

		writeTrackFile(t, req.OutputDir, "Queen", "Under Pressure")

		return nil
	}

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	assert.Equal(t, 2, setup.fetcher.callCount())

	report := readReport(t, setup.tempDir, setup.config.ReportFilename)
	require.Len(t, report.Succeeded, 1)
	assert.Empty(t, report.Failed)

	result := report.Succeeded[0]
	assert.Equal(t, int64(2), result.AttemptCount)
	assert.Empty(t, result.Error)
}

// TestDownloadPlaylists_AttemptsExhausted tests that a permanently failing track
// is attempted exactly RetryAttemptsCount times and then reported as failed.
func TestDownloadPlaylists_AttemptsExhausted(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	track := testTrack("idA", "Under Pressure", "Queen")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(track), nil)

	setup.fetcher.handler = func(_ int, _ *FetchRequest) error {
		return ErrAcquisition
	}

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	assert.Equal(t, 3, setup.fetcher.callCount())

	report := readReport(t, setup.tempDir, setup.config.ReportFilename)

	assert.Empty(t, report.Succeeded)
	require.Len(t, report.Failed, 1)

	result := report.Failed[0]
	assert.Equal(t, int64(3), result.AttemptCount)
	assert.Contains(t, result.Error, ErrAttemptsExhausted.Error())
	assert.Empty(t, result.FilePath)
}

// TestDownloadPlaylists_AlreadyExists tests that a pre-existing file short-circuits
// the track without any fetch attempt.
func TestDownloadPlaylists_AlreadyExists(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	track := testTrack("idA", "Don't Stop Me Now", "Queen")

	// File with different punctuation and case still matches.
	existingPath := writeTrackFile(t, setup.tempDir, "queen", "dont stop me now")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(track), nil)

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	assert.Equal(t, 0, setup.fetcher.callCount())

	report := readReport(t, setup.tempDir, setup.config.ReportFilename)
	require.Len(t, report.Succeeded, 1)
	assert.Empty(t, report.Failed)

	result := report.Succeeded[0]
	assert.True(t, result.AlreadyExisted)
	assert.Equal(t, int64(0), result.AttemptCount)
	assert.Equal(t, existingPath, result.FilePath)
}

// TestDownloadPlaylists_ReplaceTracks tests that replace_tracks forces re-acquisition
// even when a matching file exists.
func TestDownloadPlaylists_ReplaceTracks(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t, func(cfg *config.Config) { cfg.ReplaceTracks = true })
	defer setup.cleanup()

	track := testTrack("idA", "Don't Stop Me Now", "Queen")
	writeTrackFile(t, setup.tempDir, "Queen", "Don't Stop Me Now")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(track), nil)

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	assert.Equal(t, 1, setup.fetcher.callCount())

	report := readReport(t, setup.tempDir, setup.config.ReportFilename)
	require.Len(t, report.Succeeded, 1)
	assert.False(t, report.Succeeded[0].AlreadyExisted)
	assert.Equal(t, int64(1), report.Succeeded[0].AttemptCount)
}

// TestDownloadPlaylists_FileMatchFailure tests that a fetch reporting success
// without producing a matching file is treated as a failed attempt.
func TestDownloadPlaylists_FileMatchFailure(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	track := testTrack("idA", "Under Pressure", "Queen")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(track), nil)

	// The fetcher claims success but creates nothing.
	setup.fetcher.handler = func(_ int, _ *FetchRequest) error {
		return nil
	}

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	assert.Equal(t, 3, setup.fetcher.callCount())

	report := readReport(t, setup.tempDir, setup.config.ReportFilename)
	require.Len(t, report.Failed, 1)
	assert.Contains(t, report.Failed[0].Error, ErrFileMatch.Error())
}

// TestDownloadPlaylists_Cancellation tests that canceling mid-run stops processing,
// omits untouched tracks from the report and still writes it, flagged interrupted.
func TestDownloadPlaylists_Cancellation(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	trackA := testTrack("idA", "Don't Stop Me Now", "Queen")
	trackB := testTrack("idB", "Under Pressure", "Queen")
	trackC := testTrack("idC", "Radio Ga Ga", "Queen")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(trackA, trackB, trackC), nil)

	ctx, cancel := context.WithCancel(context.Background())

	// The first track succeeds, then the user presses CTRL+C.
	setup.fetcher.handler = func(_ int, req *FetchRequest) error {
		writeTrackFile(t, req.OutputDir, "Queen", "Don't Stop Me Now")
		cancel()

		return nil
	}

	setup.service.DownloadPlaylists(ctx, []string{testPlaylistURL})

	assert.Equal(t, 1, setup.fetcher.callCount())

	report := readReport(t, setup.tempDir, setup.config.ReportFilename)

	// Unprocessed tracks are omitted from the report, not marked failed.
	assert.True(t, report.Interrupted)
	assert.Equal(t, 3, report.TotalTracks)
	require.Len(t, report.Succeeded, 1)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "idA", report.Succeeded[0].TrackID)

	// The interrupted run still records its end time, so the summary
	// can report the duration.
	impl, ok := setup.service.(*ServiceImpl)
	require.True(t, ok)
	assert.False(t, impl.stats.EndTime.IsZero())
}

// TestDownloadPlaylists_PlaylistNotFound tests that a missing playlist aborts
// before any acquisition and writes no report.
func TestDownloadPlaylists_PlaylistNotFound(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(nil, spotify.ErrPlaylistNotFound)

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	assert.Equal(t, 0, setup.fetcher.callCount())

	_, err := os.Stat(filepath.Join(setup.tempDir, setup.config.ReportFilename))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestDownloadPlaylists_AuthFailure tests that failed authentication aborts the playlist.
func TestDownloadPlaylists_AuthFailure(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(nil, spotify.ErrAuthFailed)

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	assert.Equal(t, 0, setup.fetcher.callCount())
}

// TestDownloadPlaylists_WriteTags tests that tags are written after a successful acquisition.
func TestDownloadPlaylists_WriteTags(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t, func(cfg *config.Config) { cfg.WriteTags = true })
	defer setup.cleanup()

	track := testTrack("idA", "Under Pressure", "Queen")

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "37i9dQZF1DXcBWIGoYBM5M").
		Return(testPlaylist(track), nil)

	setup.fetcher.handler = fetcherWritesFile(t, map[int][2]string{
		1: {"Queen", "Under Pressure"},
	})

	setup.service.DownloadPlaylists(context.Background(), []string{testPlaylistURL})

	require.Len(t, setup.tagProcessor.calls, 1)

	tagRequest := setup.tagProcessor.calls[0]
	assert.FileExists(t, tagRequest.TrackPath)
	assert.Equal(t, "Under Pressure", tagRequest.TrackTags["trackTitle"])
	assert.Equal(t, "Queen", tagRequest.TrackTags["trackArtist"])
	assert.Equal(t, "2024", tagRequest.TrackTags["releaseYear"])
}

// TestDownloadPlaylists_MultiplePlaylistsReportNames tests that per-playlist reports
// don't overwrite each other when several playlists are requested.
func TestDownloadPlaylists_MultiplePlaylistsReportNames(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "first").
		Return(&spotify.Playlist{ID: "first", Name: "First"}, nil)
	setup.mockClient.EXPECT().
		GetPlaylist(gomock.Any(), "second").
		Return(&spotify.Playlist{ID: "second", Name: "Second"}, nil)

	setup.service.DownloadPlaylists(context.Background(), []string{
		"https://open.spotify.com/playlist/first",
		"spotify:playlist:second",
	})

	assert.FileExists(t, filepath.Join(setup.tempDir, "download_results_first.json"))
	assert.FileExists(t, filepath.Join(setup.tempDir, "download_results_second.json"))
}

// TestDownloadPlaylists_UnknownURL tests that unrecognized arguments are skipped.
func TestDownloadPlaylists_UnknownURL(t *testing.T) {
	t.Parallel()

	setup := newTestDownloadSetup(t)
	defer setup.cleanup()

	setup.service.DownloadPlaylists(context.Background(), []string{"https://example.com/not-a-playlist"})

	assert.Equal(t, 0, setup.fetcher.callCount())
}
