package grabber

import (
	"fmt"
	"strings"
	"time"
)

// Bitrate represents the target MP3 bitrate for acquired tracks.
type Bitrate uint8

// Enum values for Bitrate.
const (
	// BitrateUnknown represents an unknown or unspecified bitrate.
	BitrateUnknown Bitrate = iota
	// Bitrate128 represents MP3 at 128 Kbps.
	Bitrate128
	// Bitrate192 represents MP3 at 192 Kbps.
	Bitrate192
	// Bitrate256 represents MP3 at 256 Kbps.
	Bitrate256
	// Bitrate320 represents MP3 at 320 Kbps.
	Bitrate320
)

// String returns the display value of the Bitrate enum.
func (b Bitrate) String() string {
	//nolint:exhaustive // All meaningful cases are explicitly handled; default covers unknown values.
	switch b {
	case Bitrate128:
		return "MP3, 128 Kbps (standard quality)"
	case Bitrate192:
		return "MP3, 192 Kbps (good quality)"
	case Bitrate256:
		return "MP3, 256 Kbps (high quality)"
	case Bitrate320:
		return "MP3, 320 Kbps (highest quality)"
	default:
		return "unknown bitrate"
	}
}

// AsFetcherParameterValue returns the fetcher command-line value for the Bitrate.
func (b Bitrate) AsFetcherParameterValue() string {
	//nolint:exhaustive // All meaningful cases are explicitly handled; default covers unknown values.
	switch b {
	case Bitrate128:
		return "128k"
	case Bitrate192:
		return "192k"
	case Bitrate256:
		return "256k"
	case Bitrate320:
		return "320k"
	default:
		return ""
	}
}

// ParseBitrate converts a string to a Bitrate enum.
func ParseBitrate(s string) Bitrate {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "128k":
		return Bitrate128
	case "192k":
		return Bitrate192
	case "256k":
		return Bitrate256
	case "320k":
		return Bitrate320
	default:
		return BitrateUnknown
	}
}

// AttemptState represents the lifecycle state of a single track's acquisition.
type AttemptState uint8

const (
	// AttemptStatePending - the track has not been attempted yet.
	AttemptStatePending AttemptState = iota
	// AttemptStateAttempting - an acquisition attempt is in progress.
	AttemptStateAttempting
	// AttemptStateRetryPending - the last attempt failed and a retry is scheduled.
	AttemptStateRetryPending
	// AttemptStateSucceeded - a matching file exists in the output directory.
	AttemptStateSucceeded
	// AttemptStateFailed - all attempts are exhausted or the run was canceled.
	AttemptStateFailed
)

// String returns a human-readable representation of the AttemptState.
func (as AttemptState) String() string {
	switch as {
	case AttemptStatePending:
		return "pending"
	case AttemptStateAttempting:
		return "attempting"
	case AttemptStateRetryPending:
		return "retry pending"
	case AttemptStateSucceeded:
		return "succeeded"
	case AttemptStateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown state: %d", as)
	}
}

// TrackResult records the outcome of a single track for the run report.
type TrackResult struct {
	// TrackID is the Spotify track ID.
	TrackID string `json:"track_id"`
	// Title is the track title.
	Title string `json:"title"`
	// Artist is the primary artist of the track.
	Artist string `json:"artist"`
	// Album is the album name.
	Album string `json:"album"`
	// DurationMS is the track duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`
	// Succeeded indicates whether a matching file exists in the output directory.
	Succeeded bool `json:"succeeded"`
	// AlreadyExisted indicates the file was present before any acquisition attempt.
	AlreadyExisted bool `json:"already_existed"`
	// AttemptCount is the number of acquisition attempts made (0 for pre-existing files).
	AttemptCount int64 `json:"attempt_count"`
	// FilePath is the matched file path, empty when the track failed.
	FilePath string `json:"file_path,omitempty"`
	// Error is the final error message, empty when the track succeeded.
	Error string `json:"error,omitempty"`
}

// DownloadReport is the JSON report written at the end of each run.
type DownloadReport struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`
	// PlaylistID is the Spotify playlist ID.
	PlaylistID string `json:"playlist_id"`
	// PlaylistName is the playlist display name.
	PlaylistName string `json:"playlist_name"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the run completed or was interrupted.
	FinishedAt time.Time `json:"finished_at"`
	// Interrupted indicates the run was canceled before processing all tracks.
	Interrupted bool `json:"interrupted"`
	// TotalTracks is the number of tracks in the playlist.
	TotalTracks int `json:"total_tracks"`
	// Succeeded contains tracks with a matching file, in playlist order.
	Succeeded []*TrackResult `json:"succeeded"`
	// Failed contains tracks without a matching file, in playlist order.
	// Tracks never attempted because of cancellation appear in neither list.
	Failed []*TrackResult `json:"failed"`
}

// addResult places a finalized track result into the matching report list.
func (r *DownloadReport) addResult(result *TrackResult) {
	if result.Succeeded {
		r.Succeeded = append(r.Succeeded, result)
	} else {
		r.Failed = append(r.Failed, result)
	}
}

// DownloadStatistics tracks metrics for a download session.
type DownloadStatistics struct {
	// StartTime is when the download session began.
	StartTime time.Time
	// EndTime is when the download session completed.
	EndTime time.Time
	// TotalTracksProcessed is the total number of tracks attempted.
	TotalTracksProcessed int64
	// TracksDownloaded is the number of tracks acquired during this run.
	TracksDownloaded int64
	// TracksSkippedExists is the number of tracks skipped because a matching file already existed.
	TracksSkippedExists int64
	// TracksFailed is the number of tracks that failed after all attempts.
	TracksFailed int64
	// TotalAttempts is the total number of acquisition attempts across all tracks.
	TotalAttempts int64
	// TotalBytesDownloaded is the total size of acquired files in bytes.
	TotalBytesDownloaded int64
	// Errors is a list of all errors encountered during the download process.
	Errors []DownloadError
}

// DownloadError represents a single error that occurred during download.
type DownloadError struct {
	// TrackID is the Spotify track ID of the failed item, empty for playlist-level errors.
	TrackID string
	// ItemTitle is the human-readable title of the item.
	ItemTitle string
	// Phase indicates when the error occurred (e.g., "resolving playlist", "acquiring track").
	Phase string
	// ErrorMessage is the error message.
	ErrorMessage string
	// PlaylistID is the ID of the playlist the item belongs to.
	PlaylistID string
	// PlaylistName is the name of the playlist the item belongs to.
	PlaylistName string
}

// PlaylistItem represents a playlist reference extracted from command-line arguments.
type PlaylistItem struct {
	// URL is the original argument the playlist was parsed from.
	URL string
	// PlaylistID is the Spotify playlist ID.
	PlaylistID string
}

// String returns a human-readable representation of the PlaylistItem.
func (pi PlaylistItem) String() string {
	return fmt.Sprintf("playlist ID: %s", pi.PlaylistID)
}
