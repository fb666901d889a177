package app

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	spotify_client "github.com/akovalenko/spotify-grabber/internal/client/spotify"
	"github.com/akovalenko/spotify-grabber/internal/logger"
)

// progressObserver renders a terminal progress bar over the per-track callbacks.
// A new bar is started for each playlist, the service reports completed counts
// starting from 1 for every playlist it processes.
type progressObserver struct {
	bar      *progressbar.ProgressBar
	barTotal int
}

func newProgressObserver() *progressObserver {
	return &progressObserver{}
}

// observe matches grabber.ProgressFunc and is called after each track completes.
func (p *progressObserver) observe(completed, total int, track *spotify_client.Track) {
	// The bar would interleave with debug output, skip it at verbose levels.
	if logger.Level() < zap.InfoLevel {
		return
	}

	if p.bar == nil || completed == 1 || p.barTotal != total {
		p.bar = progressbar.Default(int64(total), "Downloading")
		p.barTotal = total
	}

	p.bar.Describe(fmt.Sprintf("%s - %s", track.Artist(), track.Title))
	_ = p.bar.Set(completed) //nolint:errcheck // Rendering failures must not affect the run.

	if completed == total {
		_ = p.bar.Finish() //nolint:errcheck // Rendering failures must not affect the run.
		p.bar = nil
	}
}
