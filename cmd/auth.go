package cmd

import (
	"github.com/spf13/cobra"

	"github.com/akovalenko/spotify-grabber/internal/app"
	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/logger"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Manage Spotify API credentials.

Use 'auth set' to store your Spotify application credentials in the configuration file.`,
	}

	authSetCmd = &cobra.Command{
		Use:   "set {client-id} {client-secret}",
		Short: "Store Spotify API credentials in the configuration file",
		Long: `Stores the Spotify application client ID and client secret in the configuration file.

Create an application at https://developer.spotify.com/dashboard to obtain
the credentials. The client-credentials flow used by spotify-grabber only
reads public playlists, no user login is involved.

After storing the credentials you can download a playlist:
spotify-grabber https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M`,
		Args:             cobra.ExactArgs(2), //nolint:mnd // Client ID and client secret.
		PersistentPreRun: initAuthConfig,
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteAuthSetCommand(cmd.Context(), appConfig, args[0], args[1])
		},
	}
)

// initAuthConfig loads the configuration but tolerates a missing file:
// on the first run 'auth set' creates it.
func initAuthConfig(cmd *cobra.Command, _ []string) {
	cfg, err := config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Warnf(cmd.Context(), "Could not read configuration, a new file will be created: %v", err)

		cfg = &config.Config{}
	}

	appConfig = cfg
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	// Add set subcommand to auth command.
	authCmd.AddCommand(authSetCmd)

	// Add auth command to root command.
	rootCmd.AddCommand(authCmd)
}
