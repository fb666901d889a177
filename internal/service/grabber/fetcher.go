package grabber

//go:generate $MOCKGEN -source=fetcher.go -destination=mocks/fetcher_mock.go

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/akovalenko/spotify-grabber/internal/logger"
)

// Fetcher defines the interface for acquiring a track into the output directory.
type Fetcher interface {
	// Fetch runs a single acquisition attempt. A nil error means the tool
	// reported success; it does NOT guarantee a matching file exists on disk.
	Fetch(ctx context.Context, req *FetchRequest) error
}

// FetchRequest contains parameters for a single acquisition attempt.
type FetchRequest struct {
	// Query is the search query identifying the track.
	Query string
	// OutputDir is the directory the file should be placed in.
	OutputDir string
	// Bitrate is the target MP3 bitrate.
	Bitrate Bitrate
}

// SpotDLFetcher acquires tracks by shelling out to the spotDL command-line tool.
type SpotDLFetcher struct {
	// binaryPath is the path to the spotDL binary.
	binaryPath string
}

// errorOutputTailLimit bounds how much tool output is included in error messages.
const errorOutputTailLimit = 512

// NewSpotDLFetcher creates a Fetcher backed by the spotDL binary at the given path.
func NewSpotDLFetcher(binaryPath string) Fetcher {
	return &SpotDLFetcher{binaryPath: binaryPath}
}

// Fetch runs spotDL for a single track and waits for it to finish.
func (f *SpotDLFetcher) Fetch(ctx context.Context, req *FetchRequest) error {
	args := []string{
		"download", req.Query,
		"--output", req.OutputDir,
		"--bitrate", req.Bitrate.AsFetcherParameterValue(),
	}

	logger.Debugf(ctx, "Running %s %s", f.binaryPath, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, f.binaryPath, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		// Cancellation kills the child process; report it as such, not as a tool failure.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		return fmt.Errorf("%w: %v: %s", ErrAcquisition, err, tailOf(output, errorOutputTailLimit))
	}

	logger.Debugf(ctx, "Acquisition tool output: %s", string(output))

	return nil
}

// tailOf returns the last n bytes of the output as a trimmed string.
func tailOf(output []byte, n int) string {
	if len(output) > n {
		output = output[len(output)-n:]
	}

	return strings.TrimSpace(string(output))
}
