// Package app provides the main application logic for downloading Spotify playlists.
// It initializes the necessary components, such as the Spotify client, URL processor,
// template manager, tag processor and fetcher, and orchestrates the download process.
package app
