package spotify

import "errors"

// Static error definitions for better error handling.
var (
	// ErrAuthFailed indicates that authentication with the Spotify API failed.
	// It is not retried: a bad credential won't get better on the next attempt.
	ErrAuthFailed = errors.New("spotify authentication failed")
	// ErrPlaylistNotFound indicates that the requested playlist does not exist or is not accessible.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrTransient indicates a temporary API failure (rate limiting, server errors, network issues).
	ErrTransient = errors.New("transient spotify API error")
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrEmptyPlaylistID indicates that an empty playlist ID was passed.
	ErrEmptyPlaylistID = errors.New("playlist ID cannot be empty")
)
