package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/constants"
)

const testBaseConfigContent = `
client_id: "config_client_id"
client_secret: "config_client_secret"
quality: "320k"
output_path: "/config/output"
log_level: "info"
search_query_template: "{{.trackTitle}} {{.trackArtist}} {{.trackAlbum}}"
track_filename_template: "{{.trackArtist}} - {{.trackTitle}}"
report_filename: "download_results.json"
fetcher_path: "spotdl"
write_tags: true
replace_tracks: false
retry_attempts_count: 3
max_download_pause: "5s"
min_retry_pause: "1s"
max_retry_pause: "3s"
`

// newTestCommand creates a command carrying the same flags as the root command.
func newTestCommand() *cobra.Command {
	testCmd := &cobra.Command{Use: "test"}

	testCmd.Flags().StringP("output", "o", "", "output directory")
	testCmd.Flags().StringP("quality", "q", "", "target MP3 bitrate")
	testCmd.Flags().StringP("report", "r", "", "report filename")
	testCmd.Flags().Bool("replace-tracks", false, "re-download existing tracks")

	return testCmd
}

// writeTestConfig writes the base config to a temp file and loads it.
func writeTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "test-config.yaml")

	err := os.WriteFile(configPath, []byte(content), constants.DefaultFilePermissions)
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)

	return cfg
}

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "320k", cfg.Quality)
				assert.Equal(t, "/config/output", cfg.OutputPath)
				assert.Equal(t, "download_results.json", cfg.ReportFilename)
				assert.False(t, cfg.ReplaceTracks)
			},
		},
		{
			name: "output flag only - override output path",
			flags: map[string]string{
				"output": "/flag/output",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/output", cfg.OutputPath)
				assert.Equal(t, "320k", cfg.Quality)
			},
		},
		{
			name: "quality flag only - override quality",
			flags: map[string]string{
				"quality": "192k",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "192k", cfg.Quality)
				assert.Equal(t, "/config/output", cfg.OutputPath)
			},
		},
		{
			name: "report flag only - override report filename",
			flags: map[string]string{
				"report": "custom_report.json",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "custom_report.json", cfg.ReportFilename)
			},
		},
		{
			name: "replace-tracks flag only - override replace behavior",
			flags: map[string]string{
				"replace-tracks": "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.ReplaceTracks)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"output":         "/all/flags/output",
				"quality":        "128k",
				"report":         "run.json",
				"replace-tracks": "true",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/all/flags/output", cfg.OutputPath)
				assert.Equal(t, "128k", cfg.Quality)
				assert.Equal(t, "run.json", cfg.ReportFilename)
				assert.True(t, cfg.ReplaceTracks)
			},
		},
		{
			name: "quality flag is case-insensitive",
			flags: map[string]string{
				"quality": "256K",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "256k", cfg.Quality)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeTestConfig(t, testBaseConfigContent)

			testCmd := newTestCommand()

			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue),
					"failed to set flag %s", flagName)
			}

			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are caught during validation.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	invalidTests := []struct {
		name          string
		flagName      string
		flagValue     string
		expectedError string
	}{
		{
			name:          "invalid quality - unsupported bitrate",
			flagName:      "quality",
			flagValue:     "999k",
			expectedError: "invalid quality",
		},
		{
			name:          "invalid quality - not a bitrate",
			flagName:      "quality",
			flagValue:     "lossless",
			expectedError: "invalid quality",
		},
	}

	for _, tt := range invalidTests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeTestConfig(t, testBaseConfigContent)

			testCmd := newTestCommand()
			require.NoError(t, testCmd.Flags().Set(tt.flagName, tt.flagValue))

			// Binding should fail validation.
			err := bindFlagsToConfig(testCmd.Flags(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

// TestBindFlagsToConfig_EmptyFlagSet tests handling of an empty flag set.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		ClientID:           "test_client_id",
		ClientSecret:       "test_client_secret",
		Quality:            "320k",
		LogLevel:           "info",
		RetryAttemptsCount: 3,
		MaxDownloadPause:   "5s",
		MinRetryPause:      "1s",
		MaxRetryPause:      "3s",
	}

	// Create an empty flag set.
	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	// Calling with an empty flag set should just validate the config.
	err := bindFlagsToConfig(emptyFlags, cfg)
	require.NoError(t, err)
}
