package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/akovalenko/spotify-grabber/internal/constants"
	"github.com/akovalenko/spotify-grabber/internal/logger"
	"github.com/akovalenko/spotify-grabber/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// ClientID is the Spotify application client ID used for API access.
	ClientID string `mapstructure:"client_id"`
	// ClientSecret is the Spotify application client secret used for API access.
	ClientSecret string `mapstructure:"client_secret"`
	// Quality is the preferred MP3 bitrate: one of 128k, 192k, 256k, 320k.
	Quality string `mapstructure:"quality"`
	// OutputPath is the directory path where downloaded files will be saved.
	OutputPath string `mapstructure:"output_path"`
	// SearchQueryTemplate is the template for building the acquisition search query per track.
	SearchQueryTemplate string `mapstructure:"search_query_template"`
	// TrackFilenameTemplate is the template for the expected filename stem of a downloaded track.
	TrackFilenameTemplate string `mapstructure:"track_filename_template"`
	// ReportFilename is the name of the JSON report written after each run.
	ReportFilename string `mapstructure:"report_filename"`
	// FetcherPath is the path to the external acquisition tool binary.
	FetcherPath string `mapstructure:"fetcher_path"`
	// WriteTags indicates whether ID3v2 tags are written to matched files.
	WriteTags bool `mapstructure:"write_tags"`
	// ReplaceTracks indicates whether tracks are re-downloaded even when a matching file exists.
	ReplaceTracks bool `mapstructure:"replace_tracks"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// RetryAttemptsCount is the maximum number of acquisition attempts per track.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count"`
	// MaxDownloadPause is the maximum pause duration between tracks.
	MaxDownloadPause string `mapstructure:"max_download_pause"`
	// MinRetryPause is the minimum pause duration before retrying.
	MinRetryPause string `mapstructure:"min_retry_pause"`
	// MaxRetryPause is the maximum pause duration before retrying.
	MaxRetryPause string `mapstructure:"max_retry_pause"`
	// SpotifyAPIBaseURL is the base URL for the Spotify Web API (set automatically).
	SpotifyAPIBaseURL string
	// SpotifyAccountsBaseURL is the base URL for the Spotify accounts service (set automatically).
	SpotifyAccountsBaseURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxDownloadPause is the parsed maximum pause between tracks.
	ParsedMaxDownloadPause time.Duration
	// ParsedMinRetryPause is the parsed minimum pause before retrying.
	ParsedMinRetryPause time.Duration
	// ParsedMaxRetryPause is the parsed maximum pause before retrying.
	ParsedMaxRetryPause time.Duration
}

const (
	// SpotifyAPIBaseURL is the base URL for the Spotify Web API.
	SpotifyAPIBaseURL = "https://api.spotify.com"

	// SpotifyAccountsBaseURL is the base URL for the Spotify accounts service (token endpoint).
	SpotifyAccountsBaseURL = "https://accounts.spotify.com"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".spotify-grabber.yaml"

	// DefaultSearchQueryTemplate is the default template for acquisition search queries.
	DefaultSearchQueryTemplate = "{{.trackTitle}} {{.trackArtist}} {{.trackAlbum}}"

	// DefaultTrackFilenameTemplate is the default template for expected track filename stems.
	DefaultTrackFilenameTemplate = "{{.trackArtist}} - {{.trackTitle}}"

	// DefaultReportFilename is the default name of the per-run JSON report.
	DefaultReportFilename = "download_results.json"

	// DefaultFetcherPath is the default binary name of the external acquisition tool.
	DefaultFetcherPath = "spotdl"

	// DefaultRetryAttemptsCount is the default hard ceiling of acquisition attempts per track.
	DefaultRetryAttemptsCount = 3
)

// allowedQualities enumerates the valid MP3 bitrates.
//
//nolint:gochecknoglobals // Immutable lookup table used as a constant.
var allowedQualities = map[string]struct{}{
	"128k": {},
	"192k": {},
	"256k": {},
	"320k": {},
}

// Static error definitions for better error handling.
var (
	// ErrEmptyClientID indicates that the Spotify client ID is missing.
	ErrEmptyClientID = errors.New("client_id cannot be empty")
	// ErrEmptyClientSecret indicates that the Spotify client secret is missing.
	ErrEmptyClientSecret = errors.New("client_secret cannot be empty")
	// ErrInvalidQuality indicates that the quality setting is invalid.
	ErrInvalidQuality = errors.New("invalid quality")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry attempts count must be a positive integer")
	// ErrInvalidMaxDownloadPause indicates that the max download pause duration is invalid.
	ErrInvalidMaxDownloadPause = errors.New("max_download_pause must be positive")
	// ErrInvalidMinRetryPause indicates that the min retry pause duration is invalid.
	ErrInvalidMinRetryPause = errors.New("min_retry_pause must be positive")
	// ErrInvalidMaxRetryPause indicates that the max retry pause duration is invalid.
	ErrInvalidMaxRetryPause = errors.New("max_retry_pause must be positive")
	// ErrRetryPauseBoundsSwapped indicates that min_retry_pause exceeds max_retry_pause.
	ErrRetryPauseBoundsSwapped = errors.New("min_retry_pause cannot be greater than max_retry_pause")
)

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	if strings.TrimSpace(cfg.ClientID) == "" {
		return ErrEmptyClientID
	}

	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return ErrEmptyClientSecret
	}

	cfg.SpotifyAPIBaseURL = SpotifyAPIBaseURL
	cfg.SpotifyAccountsBaseURL = SpotifyAccountsBaseURL

	cfg.Quality = strings.ToLower(strings.TrimSpace(cfg.Quality))
	if _, ok := allowedQualities[cfg.Quality]; !ok {
		return fmt.Errorf("%w: '%s', must be one of 128k, 192k, 256k, 320k", ErrInvalidQuality, cfg.Quality)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if cfg.ReportFilename == "" {
		cfg.ReportFilename = DefaultReportFilename
	}

	// Report filenames come from user config, keep them filesystem-safe and JSON-suffixed.
	cfg.ReportFilename = utils.SanitizeFilename(
		utils.SetFileExtension(cfg.ReportFilename, constants.ExtensionJSON, true))

	if cfg.FetcherPath == "" {
		cfg.FetcherPath = DefaultFetcherPath
	}

	if cfg.RetryAttemptsCount == 0 {
		cfg.RetryAttemptsCount = DefaultRetryAttemptsCount
	}

	if cfg.RetryAttemptsCount < 0 {
		return ErrInvalidRetryAttempts
	}

	cfg.ParsedMaxDownloadPause, err = time.ParseDuration(cfg.MaxDownloadPause)
	if err != nil {
		return fmt.Errorf("failed to parse max download pause: %w", err)
	}

	if cfg.ParsedMaxDownloadPause <= 0 {
		return ErrInvalidMaxDownloadPause
	}

	cfg.ParsedMinRetryPause, err = time.ParseDuration(cfg.MinRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse min retry pause: %w", err)
	}

	if cfg.ParsedMinRetryPause <= 0 {
		return ErrInvalidMinRetryPause
	}

	cfg.ParsedMaxRetryPause, err = time.ParseDuration(cfg.MaxRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse max retry pause: %w", err)
	}

	if cfg.ParsedMaxRetryPause <= 0 {
		return ErrInvalidMaxRetryPause
	}

	if cfg.ParsedMinRetryPause > cfg.ParsedMaxRetryPause {
		return ErrRetryPauseBoundsSwapped
	}

	return nil
}

// SaveCredentials saves the Spotify credentials to the config file
// while preserving the original format and key order.
func SaveCredentials(cfg *Config) error {
	configFile := getConfigFilePath()

	exists, err := utils.IsFileExist(configFile)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	// On the first run there is nothing to rewrite yet.
	if !exists {
		return createConfigFile(configFile, cfg)
	}

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update credential values in the node tree.
	updateValueInNode(&node, "client_id", cfg.ClientID)
	updateValueInNode(&node, "client_secret", cfg.ClientSecret)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// createConfigFile creates a new config file holding just the credentials.
func createConfigFile(configFile string, cfg *Config) error {
	viper.Set("client_id", cfg.ClientID)
	viper.Set("client_secret", cfg.ClientSecret)

	if err := viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateValueInNode updates a top-level scalar value in the YAML node tree.
// Missing keys are appended to the end of the document.
func updateValueInNode(node *yaml.Node, key, value string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == key {
			// Update the value while preserving style.
			valueNode.Value = value

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			return
		}
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: yaml.DoubleQuotedStyle},
	)
}
