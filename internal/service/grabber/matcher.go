package grabber

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akovalenko/spotify-grabber/internal/client/spotify"
	"github.com/akovalenko/spotify-grabber/internal/constants"
	"github.com/akovalenko/spotify-grabber/internal/utils"
)

// matchTrackFile scans the output directory for an MP3 file belonging to the track.
// Matching is punctuation-insensitive and case-insensitive: a file matches when its
// normalized name contains both the normalized title and the normalized primary artist.
// When several files match, the most recently modified one wins.
func matchTrackFile(outputPath string, track *spotify.Track) (string, bool, error) {
	normalizedTitle := utils.NormalizeForMatch(track.Title)
	normalizedArtist := utils.NormalizeForMatch(track.Artist())

	// A title that normalizes to nothing would match any file.
	if normalizedTitle == "" {
		return "", false, nil
	}

	entries, err := os.ReadDir(outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}

		return "", false, err
	}

	var (
		bestPath    string
		bestModTime time.Time
	)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), constants.ExtensionMP3) {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))

		normalizedName := utils.NormalizeForMatch(stem)
		if !strings.Contains(normalizedName, normalizedTitle) ||
			!strings.Contains(normalizedName, normalizedArtist) {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}

		if bestPath == "" || info.ModTime().After(bestModTime) {
			bestPath = filepath.Join(outputPath, name)
			bestModTime = info.ModTime()
		}
	}

	if bestPath == "" {
		return "", false, nil
	}

	return bestPath, true, nil
}
