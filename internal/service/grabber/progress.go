package grabber

import "github.com/akovalenko/spotify-grabber/internal/client/spotify"

// ProgressFunc is called after each track completes (successfully or not).
// completed is the number of tracks finished so far, total is the playlist size,
// and track is the track that just finished.
type ProgressFunc func(completed, total int, track *spotify.Track)

// notifyProgress invokes the progress callback when one is configured.
func (s *ServiceImpl) notifyProgress(completed, total int, track *spotify.Track) {
	if s.progressFunc == nil {
		return
	}

	s.progressFunc(completed, total, track)
}
