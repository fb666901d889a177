package grabber

//go:generate $MOCKGEN -source=url_processor.go -destination=mocks/url_processor_mock.go

import (
	"context"
	"regexp"
	"strings"

	"github.com/akovalenko/spotify-grabber/internal/logger"
	"github.com/akovalenko/spotify-grabber/internal/utils"
)

// URLProcessor defines the interface for parsing playlist references from command-line arguments.
type URLProcessor interface {
	// ExtractPlaylistItems parses arguments into playlist items,
	// expanding text files and removing duplicates while preserving order.
	ExtractPlaylistItems(ctx context.Context, args []string) ([]*PlaylistItem, error)
}

// URLProcessorImpl implements the URLProcessor interface.
type URLProcessorImpl struct{}

// defaultTextExtension is the default file extension for text files.
const defaultTextExtension = ".txt"

// playlistPatterns matches the supported playlist reference formats:
// open.spotify.com URLs (with optional query), spotify: URIs and bare playlist IDs.
//
//nolint:gochecknoglobals // Immutable compiled patterns reused across calls.
var playlistPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://open\.spotify\.com/playlist/(?<ID>[0-9A-Za-z]+)(?:\?.*)?$`),
	regexp.MustCompile(`^spotify:playlist:(?<ID>[0-9A-Za-z]+)$`),
	regexp.MustCompile(`^(?<ID>[0-9A-Za-z]{22})$`),
}

// NewURLProcessor creates and returns a new instance of URLProcessorImpl.
func NewURLProcessor() URLProcessor {
	return &URLProcessorImpl{}
}

// ExtractPlaylistItems parses arguments into playlist items,
// expanding text files and removing duplicates while preserving order.
func (up *URLProcessorImpl) ExtractPlaylistItems(ctx context.Context, args []string) ([]*PlaylistItem, error) {
	// Expand text files into their contained URLs first.
	urls, err := up.processAndFlattenURLs(args)
	if err != nil {
		return nil, err
	}

	var (
		items     = make([]*PlaylistItem, 0, len(urls))
		parsedIDs = make(map[string]struct{}, len(urls))
	)

	for _, url := range urls {
		item := up.parsePlaylistItem(url)
		if item == nil {
			logger.Warnf(ctx, "Unknown URL: %s", url)

			continue
		}

		// Skip playlists already seen under a different URL form.
		if _, ok := parsedIDs[item.PlaylistID]; ok {
			continue
		}

		parsedIDs[item.PlaylistID] = struct{}{}

		items = append(items, item)
	}

	return items, nil
}

func (up *URLProcessorImpl) parsePlaylistItem(url string) *PlaylistItem {
	trimmed := strings.TrimSpace(url)

	for _, pattern := range playlistPatterns {
		if playlistID := utils.ExtractNamedGroup(pattern, "ID", trimmed); playlistID != "" {
			return &PlaylistItem{URL: url, PlaylistID: playlistID}
		}
	}

	return nil
}

func (up *URLProcessorImpl) processAndFlattenURLs(urls []string) ([]string, error) {
	var (
		// Track processed URLs.
		processedSet = make(map[string]struct{})
		// Track processed text files.
		processedTextFiles = make(map[string]struct{})
		// Store the final list of URLs.
		processedURLs []string
	)

	for _, url := range urls {
		// If the URL is not a text file, add it directly to the processed list.
		if !strings.HasSuffix(url, defaultTextExtension) {
			if _, ok := processedSet[url]; ok {
				continue
			}

			processedSet[url] = struct{}{}

			processedURLs = append(processedURLs, url)

			continue
		}

		// Skip already processed text files.
		if _, exists := processedTextFiles[url]; exists {
			continue
		}

		// Read unique lines from the text file.
		lines, err := utils.ReadUniqueLinesFromFile(url)
		if err != nil {
			return nil, err
		}

		// Add each line (URL) from the text file to the processed list.
		for _, line := range lines {
			if _, ok := processedSet[line]; ok {
				continue
			}

			processedSet[line] = struct{}{}

			processedURLs = append(processedURLs, line)
		}

		// Mark the text file as processed.
		processedTextFiles[url] = struct{}{}
	}

	return processedURLs, nil
}
