package spotify

// Playlist represents a resolved Spotify playlist with its full track list.
type Playlist struct {
	// ID is the Spotify playlist ID.
	ID string
	// Name is the playlist display name.
	Name string
	// Tracks contains the playlist tracks in playlist order.
	Tracks []*Track
}

// Track represents a single track from a Spotify playlist.
type Track struct {
	// ID is the Spotify track ID.
	ID string
	// Title is the track title.
	Title string
	// Artists contains the track artist names in credit order.
	Artists []string
	// Album is the album name the track belongs to.
	Album string
	// TrackNumber is the position of the track within its album.
	TrackNumber int
	// ReleaseYear is the year the album was released, empty when unknown.
	ReleaseYear string
	// DurationMS is the track duration in milliseconds.
	DurationMS int64
}

// Artist returns the primary artist of the track, or an empty string when unknown.
func (t *Track) Artist() string {
	if len(t.Artists) == 0 {
		return ""
	}

	return t.Artists[0]
}

// tokenResponse represents the response from the client-credentials token endpoint.
type tokenResponse struct {
	// AccessToken is the bearer token for Web API requests.
	AccessToken string `json:"access_token"`
	// TokenType is the token type, always "Bearer".
	TokenType string `json:"token_type"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`
}

// playlistResponse represents the playlist metadata endpoint response.
type playlistResponse struct {
	// ID is the Spotify playlist ID.
	ID string `json:"id"`
	// Name is the playlist display name.
	Name string `json:"name"`
	// Tracks is the first page of the playlist's tracks.
	Tracks playlistTracksPage `json:"tracks"`
}

// playlistTracksPage represents one page of a playlist's tracks.
type playlistTracksPage struct {
	// Items contains the playlist entries of this page.
	Items []playlistItem `json:"items"`
	// Next is the URL of the next page, empty on the last page.
	Next string `json:"next"`
	// Total is the total number of tracks in the playlist.
	Total int `json:"total"`
}

// playlistItem represents a single playlist entry.
type playlistItem struct {
	// Track is the track object, nil for removed or unavailable entries.
	Track *trackObject `json:"track"`
	// IsLocal indicates a local file entry that cannot be resolved via the API.
	IsLocal bool `json:"is_local"`
}

// trackObject represents the track metadata returned by the API.
type trackObject struct {
	// ID is the Spotify track ID.
	ID string `json:"id"`
	// Name is the track title.
	Name string `json:"name"`
	// Artists contains the track's artists.
	Artists []artistObject `json:"artists"`
	// Album is the album the track belongs to.
	Album albumObject `json:"album"`
	// TrackNumber is the position of the track within its album.
	TrackNumber int `json:"track_number"`
	// DurationMS is the track duration in milliseconds.
	DurationMS int64 `json:"duration_ms"`
}

// artistObject represents an artist reference in track metadata.
type artistObject struct {
	// Name is the artist name.
	Name string `json:"name"`
}

// albumObject represents an album reference in track metadata.
type albumObject struct {
	// Name is the album name.
	Name string `json:"name"`
	// ReleaseDate is the album release date, precision varies (year, month or day).
	ReleaseDate string `json:"release_date"`
}

// apiErrorResponse represents the standard error envelope of the Web API.
type apiErrorResponse struct {
	Error struct {
		// Status is the HTTP status code.
		Status int `json:"status"`
		// Message is a human-readable error description.
		Message string `json:"message"`
	} `json:"error"`
}
