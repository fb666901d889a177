package grabber

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akovalenko/spotify-grabber/internal/constants"
	"github.com/akovalenko/spotify-grabber/internal/logger"
	"github.com/akovalenko/spotify-grabber/internal/utils"
)

// writeReport serializes the run report to a JSON file in the output directory.
// With several playlists in one run, each report filename carries its playlist ID
// so reports don't overwrite each other.
func (s *ServiceImpl) writeReport(ctx context.Context, report *DownloadReport, hasSiblings bool) error {
	reportPath := filepath.Join(s.cfg.OutputPath, s.reportFilename(report.PlaylistID, hasSiblings))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err = utils.WriteFileAtomically(reportPath, data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Infof(ctx, "Download report written to %s", reportPath)

	return nil
}

// reportFilename returns the report filename for a playlist.
func (s *ServiceImpl) reportFilename(playlistID string, hasSiblings bool) string {
	filename := s.cfg.ReportFilename
	if !hasSiblings {
		return filename
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	return stem + "_" + playlistID + constants.ExtensionJSON
}
