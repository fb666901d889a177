package app

import (
	"context"

	spotify_client "github.com/akovalenko/spotify-grabber/internal/client/spotify"
	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/logger"
	"github.com/akovalenko/spotify-grabber/internal/service/grabber"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the Spotify client, sets up the necessary service components,
// and starts the download process for the provided playlist references.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, args []string) {
	spotifyClient, err := spotify_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Spotify client: %v", err)
	}

	urlProcessor := grabber.NewURLProcessor()
	templateManager := grabber.NewTemplateManager(ctx, cfg)
	tagProcessor := grabber.NewTagProcessor()
	fetcher := grabber.NewSpotDLFetcher(cfg.FetcherPath)

	s := grabber.NewService(
		cfg,
		spotifyClient,
		urlProcessor,
		templateManager,
		tagProcessor,
		fetcher,
		newProgressObserver().observe,
	)

	// Ensure statistics are ALWAYS printed, even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintDownloadSummary(ctx)
	}()

	s.DownloadPlaylists(ctx, args)
}
