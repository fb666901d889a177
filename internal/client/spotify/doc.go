// Package spotify provides a client for the Spotify Web API.
// It handles client-credentials authentication, playlist resolution with pagination,
// and caching of playlist metadata to reduce redundant API calls.
package spotify
