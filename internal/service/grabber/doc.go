// Package grabber implements the playlist download pipeline:
// resolving Spotify playlists, acquiring each track via an external
// fetcher with bounded retries, matching acquired files on disk,
// tagging them, and writing a per-run JSON report.
package grabber
