package grabber

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/akovalenko/spotify-grabber/internal/client/spotify"
	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/constants"
	"github.com/akovalenko/spotify-grabber/internal/logger"
)

// Service provides methods for downloading Spotify playlists as MP3 files.
type Service interface {
	// DownloadPlaylists orchestrates the full pipeline, from URL processing to the run report.
	DownloadPlaylists(ctx context.Context, args []string)
	// PrintDownloadSummary prints a formatted summary of download statistics.
	PrintDownloadSummary(ctx context.Context)
}

// ServiceImpl implements the playlist download service with retry handling and reporting.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// spotifyClient resolves playlists via the Spotify Web API.
	spotifyClient spotify.Client
	// urlProcessor handles playlist URL parsing.
	urlProcessor URLProcessor
	// templateManager generates search queries and expected filenames.
	templateManager TemplateManager
	// tagProcessor writes metadata tags to audio files.
	tagProcessor TagProcessor
	// fetcher acquires tracks via the external tool.
	fetcher Fetcher
	// progressFunc is called after each track completes, nil disables progress reporting.
	progressFunc ProgressFunc
	// bitrate is the target MP3 bitrate parsed from the configuration.
	bitrate Bitrate
	// stats tracks download statistics for the current session.
	stats *DownloadStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a download service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	spotifyClient spotify.Client,
	urlProcessor URLProcessor,
	templateManager TemplateManager,
	tagProcessor TagProcessor,
	fetcher Fetcher,
	progressFunc ProgressFunc,
) Service {
	return &ServiceImpl{
		cfg:             cfg,
		spotifyClient:   spotifyClient,
		urlProcessor:    urlProcessor,
		templateManager: templateManager,
		tagProcessor:    tagProcessor,
		fetcher:         fetcher,
		progressFunc:    progressFunc,
		bitrate:         ParseBitrate(cfg.Quality),
		stats:           new(DownloadStatistics),
		statsMutex:      new(sync.Mutex),
	}
}

// DownloadPlaylists orchestrates the full pipeline, from URL processing to the run report.
func (s *ServiceImpl) DownloadPlaylists(ctx context.Context, args []string) {
	// Record start time for statistics.
	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.statsMutex.Unlock()

	// Record end time on every exit path, including interruption,
	// so the summary can always report the run duration.
	defer func() {
		s.statsMutex.Lock()
		s.stats.EndTime = time.Now()
		s.statsMutex.Unlock()
	}()

	// Ensure the output directory exists.
	if err := os.MkdirAll(s.cfg.OutputPath, constants.DefaultFolderPermissions); err != nil {
		logger.Errorf(ctx, "Failed to create output path: %v", err)

		return
	}

	// Extract playlist items from the provided arguments.
	items, err := s.urlProcessor.ExtractPlaylistItems(ctx, args)
	if err != nil {
		logger.Errorf(ctx, "Failed to extract playlists to download: %v", err)

		return
	}

	if len(items) == 0 {
		logger.Warn(ctx, "No playlists recognized in the given arguments")

		return
	}

	logger.Info(ctx, "Starting download process")

	itemsCount := len(items)

	for index, item := range items {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Download process interrupted")

			return
		default:
		}

		logger.Infof(ctx, "Downloading item: %v (%d / %d)", item, index+1, itemsCount)
		s.downloadPlaylist(ctx, item, itemsCount > 1)
	}

	logger.Info(ctx, "Download process completed")
}
