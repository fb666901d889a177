package grabber

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/akovalenko/spotify-grabber/internal/client/spotify"
	"github.com/akovalenko/spotify-grabber/internal/logger"
	"github.com/akovalenko/spotify-grabber/internal/utils"
)

// downloadPlaylist resolves a playlist, downloads its tracks sequentially
// and writes the run report. hasSiblings indicates more than one playlist
// was requested, which affects the report filename.
func (s *ServiceImpl) downloadPlaylist(ctx context.Context, item *PlaylistItem, hasSiblings bool) {
	playlist, err := s.spotifyClient.GetPlaylist(ctx, item.PlaylistID)
	if err != nil {
		s.handleResolveError(ctx, item, err)

		return
	}

	logger.Infof(ctx, "Playlist '%s': %d tracks", playlist.Name, len(playlist.Tracks))

	report := &DownloadReport{
		RunID:        uuid.NewString(),
		PlaylistID:   playlist.ID,
		PlaylistName: playlist.Name,
		StartedAt:    time.Now(),
		TotalTracks:  len(playlist.Tracks),
	}

	totalTracks := len(playlist.Tracks)

	for index, track := range playlist.Tracks {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		// Unprocessed tracks are omitted from the report, not marked failed.
		select {
		case <-ctx.Done():
			report.Interrupted = true
		default:
		}

		if report.Interrupted {
			break
		}

		result := s.downloadTrack(ctx, playlist, track)
		report.addResult(result)

		s.notifyProgress(index+1, totalTracks, track)

		// Pause between tracks to avoid hammering the acquisition backend.
		// Only pause when the track actually went through the fetcher.
		if index < totalTracks-1 && !result.AlreadyExisted {
			utils.RandomPause(ctx, 0, s.cfg.ParsedMaxDownloadPause)
		}
	}

	report.FinishedAt = time.Now()

	if err = s.writeReport(ctx, report, hasSiblings); err != nil {
		logger.Errorf(ctx, "Failed to write download report: %v", err)
		s.recordError(&ErrorContext{
			Phase:        "writing report",
			PlaylistID:   playlist.ID,
			PlaylistName: playlist.Name,
		}, err)
	}
}

// handleResolveError logs and records a playlist resolution failure.
// Resolution errors abort the playlist before any track is attempted.
func (s *ServiceImpl) handleResolveError(ctx context.Context, item *PlaylistItem, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info(ctx, "Playlist resolution interrupted")
	case errors.Is(err, spotify.ErrAuthFailed):
		logger.Errorf(ctx, "Authentication failed, check your credentials: %v", err)
	case errors.Is(err, spotify.ErrPlaylistNotFound):
		logger.Errorf(ctx, "Playlist '%s' was not found: %v", item.PlaylistID, err)
	default:
		logger.Errorf(ctx, "Failed to resolve playlist '%s': %v", item.PlaylistID, err)
	}

	s.recordError(&ErrorContext{
		Phase:      "resolving playlist",
		PlaylistID: item.PlaylistID,
	}, err)
}
