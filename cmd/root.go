package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/akovalenko/spotify-grabber/internal/app"
	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "spotify-grabber [flags] {playlists}",
		Short: "Download Spotify playlists as MP3 files.",
		Long: `Spotify Grabber is a CLI tool for downloading the tracks of Spotify playlists as MP3 files.

Playlists can be given as:
- https://open.spotify.com/playlist/... URLs
- spotify:playlist:... URIs
- bare playlist IDs
- .txt files containing one playlist per line

Tracks are acquired one by one with the spotDL tool, skipped when a matching
file already exists, and each run produces a JSON download report.`,
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, args)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"output",
		"o",
		"",
		"directory to save downloaded files (the path will be created if it doesn't exist).")

	rootCmdFlags.StringP(
		"quality",
		"q",
		"",
		"target MP3 bitrate: 128k, 192k, 256k or 320k.")

	rootCmdFlags.StringP(
		"report",
		"r",
		"",
		"filename of the JSON download report written to the output directory.")

	rootCmdFlags.Bool(
		"replace-tracks",
		false,
		"re-download tracks even if a matching file already exists.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	// Apply the configured log level early so validation errors are logged at it.
	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		appConfig.ParsedLogLevel = level
		logger.SetLevel(level)
	}
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("quality"); flag != nil && flag.Changed {
		cfg.Quality, _ = flags.GetString("quality")
	}

	if flag := flags.Lookup("report"); flag != nil && flag.Changed {
		cfg.ReportFilename, _ = flags.GetString("report")
	}

	if flag := flags.Lookup("replace-tracks"); flag != nil && flag.Changed {
		cfg.ReplaceTracks, _ = flags.GetBool("replace-tracks")
	}

	return config.ValidateConfig(cfg)
}
