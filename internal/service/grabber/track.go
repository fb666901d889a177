package grabber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/akovalenko/spotify-grabber/internal/client/spotify"
	"github.com/akovalenko/spotify-grabber/internal/logger"
	"github.com/akovalenko/spotify-grabber/internal/utils"
)

// downloadTrack runs the acquisition state machine for a single track:
// pre-existing check, then up to RetryAttemptsCount fetch attempts with
// a randomized pause before each retry.
//
//nolint:funlen // Function orchestrates the full per-track attempt loop.
func (s *ServiceImpl) downloadTrack(
	ctx context.Context,
	playlist *spotify.Playlist,
	track *spotify.Track,
) *TrackResult {
	result := &TrackResult{
		TrackID:    track.ID,
		Title:      track.Title,
		Artist:     track.Artist(),
		Album:      track.Album,
		DurationMS: track.DurationMS,
	}

	trackTags := fillTrackTags(track)

	// A track whose file is already present is done before the first attempt.
	if !s.cfg.ReplaceTracks {
		matchedPath, found, err := matchTrackFile(s.cfg.OutputPath, track)
		if err != nil {
			logger.Warnf(ctx, "Failed to scan output directory: %v", err)
		}

		if found {
			logger.Infof(ctx, "Track '%s - %s' already exists: %s", result.Artist, result.Title, matchedPath)
			s.incrementTrackSkipped()

			result.Succeeded = true
			result.AlreadyExisted = true
			result.FilePath = matchedPath

			return result
		}
	}

	query := s.templateManager.GetSearchQuery(ctx, trackTags)

	var lastErr error

	for attempt := int64(1); attempt <= s.cfg.RetryAttemptsCount; attempt++ {
		result.AttemptCount = attempt

		logger.Debugf(ctx, "Track '%s' state: %s", track.ID, AttemptStateAttempting)

		s.incrementAttempt()

		logger.Infof(ctx, "Acquiring '%s - %s' (attempt %d / %d)",
			result.Artist, result.Title, attempt, s.cfg.RetryAttemptsCount)

		lastErr = s.attemptTrack(ctx, track, trackTags, query, result)
		if lastErr == nil {
			logger.Debugf(ctx, "Track '%s' state: %s", track.ID, AttemptStateSucceeded)

			result.Succeeded = true

			return result
		}

		// A canceled run fails the track immediately, without burning retries.
		if errors.Is(lastErr, context.Canceled) {
			break
		}

		logger.Warnf(ctx, "Attempt %d for '%s - %s' failed: %v",
			attempt, result.Artist, result.Title, lastErr)

		if attempt < s.cfg.RetryAttemptsCount {
			logger.Debugf(ctx, "Track '%s' state: %s", track.ID, AttemptStateRetryPending)

			// The pause returns false when the context is canceled while waiting.
			if !utils.RandomPause(ctx, s.cfg.ParsedMinRetryPause, s.cfg.ParsedMaxRetryPause) {
				lastErr = context.Canceled

				break
			}
		}
	}

	logger.Debugf(ctx, "Track '%s' state: %s", track.ID, AttemptStateFailed)

	if !errors.Is(lastErr, context.Canceled) {
		lastErr = fmt.Errorf("%w: %w", ErrAttemptsExhausted, lastErr)
	}

	s.incrementTrackFailed()
	s.recordError(&ErrorContext{
		TrackID:      track.ID,
		ItemTitle:    fmt.Sprintf("%s - %s", result.Artist, result.Title),
		Phase:        "acquiring track",
		PlaylistID:   playlist.ID,
		PlaylistName: playlist.Name,
	}, lastErr)

	result.Error = lastErr.Error()

	return result
}

// attemptTrack runs one fetch attempt and verifies the result on disk.
func (s *ServiceImpl) attemptTrack(
	ctx context.Context,
	track *spotify.Track,
	trackTags map[string]string,
	query string,
	result *TrackResult,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.fetcher.Fetch(ctx, &FetchRequest{
		Query:     query,
		OutputDir: s.cfg.OutputPath,
		Bitrate:   s.bitrate,
	})
	if err != nil {
		return err
	}

	// The tool reported success; trust only what's on disk.
	matchedPath, found, err := matchTrackFile(s.cfg.OutputPath, track)
	if err != nil {
		return err
	}

	if !found {
		expectedStem := s.templateManager.GetTrackFilenameStem(ctx, trackTags)

		return fmt.Errorf("%w: no file matching '%s' in %s", ErrFileMatch, expectedStem, s.cfg.OutputPath)
	}

	result.FilePath = matchedPath

	if s.cfg.WriteTags {
		// A tagging failure doesn't undo a successful acquisition.
		if tagErr := s.tagProcessor.WriteTags(ctx, &WriteTagsRequest{
			TrackPath: matchedPath,
			TrackTags: trackTags,
		}); tagErr != nil {
			logger.Warnf(ctx, "Failed to write tags to '%s': %v", matchedPath, tagErr)
		}
	}

	s.incrementTrackDownloaded(fileSize(matchedPath))

	logger.Infof(ctx, "Acquired '%s - %s': %s", track.Artist(), track.Title, matchedPath)

	return nil
}

// fillTrackTags builds the template tags for a track.
func fillTrackTags(track *spotify.Track) map[string]string {
	return map[string]string{
		"trackID":     track.ID,
		"trackTitle":  track.Title,
		"trackArtist": track.Artist(),
		"trackAlbum":  track.Album,
		"trackNumber": strconv.Itoa(track.TrackNumber),
		"releaseYear": track.ReleaseYear,
	}
}

// fileSize returns the size of the file in bytes, 0 when it cannot be determined.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}

	return info.Size()
}
