package app

import (
	"context"

	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/logger"
)

// ExecuteAuthSetCommand executes the auth set command.
// It stores the Spotify application credentials in the configuration file.
func ExecuteAuthSetCommand(ctx context.Context, cfg *config.Config, clientID, clientSecret string) {
	cfg.ClientID = clientID
	cfg.ClientSecret = clientSecret

	if err := config.SaveCredentials(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)
		return
	}

	logger.Info(ctx, "Credentials saved successfully!")
	logger.Info(ctx, "")
	logger.Info(ctx, "Try downloading a playlist:")
	logger.Info(ctx, "spotify-grabber https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M")
}
