package grabber

import (
	"context"
	"errors"
)

// Common errors for the service layer.
var (
	// ErrAcquisition indicates that the external acquisition tool failed.
	ErrAcquisition = errors.New("acquisition tool failed")
	// ErrFileMatch indicates that acquisition reported success
	// but no matching file was found in the output directory.
	ErrFileMatch = errors.New("no matching file found in output directory")
	// ErrAttemptsExhausted indicates that all acquisition attempts failed.
	ErrAttemptsExhausted = errors.New("all acquisition attempts failed")
	// ErrUnknownURL indicates that an argument could not be parsed as a playlist reference.
	ErrUnknownURL = errors.New("unrecognized playlist URL")
)

// ErrorContext provides context information for download errors.
type ErrorContext struct {
	// TrackID is the Spotify track ID of the failed item, empty for playlist-level errors.
	TrackID string
	// ItemTitle is the human-readable title of the item.
	ItemTitle string
	// Phase indicates when the error occurred (e.g., "resolving playlist", "acquiring track").
	Phase string
	// PlaylistID is the ID of the playlist the item belongs to.
	PlaylistID string
	// PlaylistName is the name of the playlist the item belongs to.
	PlaylistName string
}

// recordError records an error in the statistics with proper context.
// Context cancellation errors are ignored as they are expected during graceful shutdown.
func (s *ServiceImpl) recordError(errCtx *ErrorContext, err error) {
	if errCtx == nil || err == nil {
		return
	}

	// Don't record context cancellation as an error - it's expected when user presses CTRL+C.
	if errors.Is(err, context.Canceled) {
		return
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	downloadErr := DownloadError{
		TrackID:      errCtx.TrackID,
		ItemTitle:    errCtx.ItemTitle,
		Phase:        errCtx.Phase,
		ErrorMessage: err.Error(),
		PlaylistID:   errCtx.PlaylistID,
		PlaylistName: errCtx.PlaylistName,
	}

	s.stats.Errors = append(s.stats.Errors, downloadErr)
}
