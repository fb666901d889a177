package spotify

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/logger"
	http_transport "github.com/akovalenko/spotify-grabber/internal/transport/http"
	"github.com/akovalenko/spotify-grabber/internal/utils"
)

// Client defines the interface for interacting with the Spotify Web API.
type Client interface {
	// GetPlaylist resolves a playlist into its name and complete, ordered track list.
	GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error)
}

// ClientImpl implements the Client interface for interacting with the Spotify Web API.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// apiBaseURL is the base URL for Web API requests.
	apiBaseURL string
	// accountsBaseURL is the base URL for the accounts service (token endpoint).
	accountsBaseURL string
	// httpClient is the HTTP client for making requests.
	httpClient *http.Client
	// playlistsCache caches resolved playlists to reduce duplicate API calls within a run.
	playlistsCache *lru.Cache[string, *Playlist]
	// tokenMutex guards the access token and its expiry.
	tokenMutex sync.Mutex
	// accessToken is the current bearer token, empty when not yet acquired.
	accessToken string
	// tokenExpiry is the time after which the access token is considered stale.
	tokenExpiry time.Time
}

const (
	// spotifyAPITokenURI is the URI path for the client-credentials token endpoint.
	spotifyAPITokenURI = "api/token"
	// spotifyAPIPlaylistURI is the URI path for the playlist metadata endpoint.
	spotifyAPIPlaylistURI = "v1/playlists"
	// playlistTracksPageLimit is the page size requested when paginating playlist tracks.
	playlistTracksPageLimit = 100
	// tokenExpiryMargin is subtracted from the token lifetime so a token
	// is refreshed before it actually expires mid-request.
	tokenExpiryMargin = 30 * time.Second
	// playlistsCacheSize defines the maximum number of playlist entries to cache.
	// A single run rarely touches more than a handful of playlists.
	playlistsCacheSize = 100
)

// NewClient creates and returns a new instance of ClientImpl.
// It initializes the HTTP client with the provided configuration.
func NewClient(cfg *config.Config) (Client, error) {
	// Initialize the HTTP client with custom transport and timeout.
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Timeout: http_transport.DefaultTimeout,
	}

	// Initialize the LRU cache for playlists to avoid re-resolving repeated URLs.
	playlistsCache, err := lru.New[string, *Playlist](playlistsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlists cache: %w", err)
	}

	client := &ClientImpl{
		cfg:             cfg,
		apiBaseURL:      cfg.SpotifyAPIBaseURL,
		accountsBaseURL: cfg.SpotifyAccountsBaseURL,
		httpClient:      httpClient,
		playlistsCache:  playlistsCache,
	}

	return client, nil
}

// GetPlaylist resolves a playlist into its name and complete, ordered track list.
// Uses an LRU cache to avoid re-resolving the same playlist within a run.
func (c *ClientImpl) GetPlaylist(ctx context.Context, playlistID string) (*Playlist, error) {
	if strings.TrimSpace(playlistID) == "" {
		return nil, ErrEmptyPlaylistID
	}

	if cached, ok := c.playlistsCache.Get(playlistID); ok {
		logger.Debugf(ctx, "Playlist cache hit for ID: %s", playlistID)

		return cached, nil
	}

	route, err := url.JoinPath(c.apiBaseURL, spotifyAPIPlaylistURI, playlistID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", playlistTracksPageLimit))

	var response playlistResponse
	if err = c.fetchJSON(ctx, route+"?"+query.Encode(), &response); err != nil {
		return nil, err
	}

	playlist := &Playlist{
		ID:     response.ID,
		Name:   response.Name,
		Tracks: convertPlaylistItems(ctx, response.Tracks.Items),
	}

	// Follow pagination until the last page is reached.
	nextPageURL := response.Tracks.Next
	for nextPageURL != "" {
		var page playlistTracksPage
		if err = c.fetchJSON(ctx, nextPageURL, &page); err != nil {
			return nil, err
		}

		playlist.Tracks = append(playlist.Tracks, convertPlaylistItems(ctx, page.Items)...)
		nextPageURL = page.Next
	}

	logger.Debugf(ctx, "Resolved playlist '%s' with %d tracks", playlist.Name, len(playlist.Tracks))

	c.playlistsCache.Add(playlistID, playlist)

	return playlist, nil
}

// convertPlaylistItems converts API playlist entries to tracks, preserving order.
// Removed, unavailable and local entries are skipped.
func convertPlaylistItems(ctx context.Context, items []playlistItem) []*Track {
	tracks := make([]*Track, 0, len(items))

	for _, item := range items {
		if item.Track == nil || item.IsLocal {
			logger.Debugf(ctx, "Skipping unavailable or local playlist entry")

			continue
		}

		artists := utils.Map(item.Track.Artists,
			func(artist artistObject) string { return artist.Name })

		tracks = append(tracks, &Track{
			ID:          item.Track.ID,
			Title:       item.Track.Name,
			Artists:     artists,
			Album:       item.Track.Album.Name,
			TrackNumber: item.Track.TrackNumber,
			ReleaseYear: releaseYearFromDate(item.Track.Album.ReleaseDate),
			DurationMS:  item.Track.DurationMS,
		})
	}

	return tracks
}

// releaseYearFromDate extracts the year from a release date of varying precision.
func releaseYearFromDate(releaseDate string) string {
	year, _, _ := strings.Cut(releaseDate, "-")

	return year
}

// fetchJSON performs an authenticated GET request and decodes the JSON response.
// A stale token (401) is refreshed and the request is retried once.
func (c *ClientImpl) fetchJSON(ctx context.Context, requestURL string, out any) error {
	for attempt := range 2 {
		token, err := c.getAccessToken(ctx)
		if err != nil {
			return err
		}

		statusCode, body, err := c.doRequest(ctx, requestURL, token)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTransient, err)
		}

		if statusCode == http.StatusUnauthorized && attempt == 0 {
			logger.Debugf(ctx, "Access token expired, refreshing")
			c.invalidateToken()

			continue
		}

		if statusCode != http.StatusOK {
			return classifyAPIError(statusCode, body)
		}

		return json.Unmarshal(body, out)
	}

	return ErrAuthFailed
}

// doRequest performs a single authenticated GET request and reads the full body.
func (c *ClientImpl) doRequest(ctx context.Context, requestURL, token string) (int, []byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return 0, nil, err
	}

	request.Header.Set("Authorization", "Bearer "+token)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, err
	}

	return response.StatusCode, body, nil
}

// classifyAPIError maps an API error response to one of the sentinel errors.
func classifyAPIError(statusCode int, body []byte) error {
	message := apiErrorMessage(body)

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %d %s", ErrAuthFailed, statusCode, message)
	case statusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrPlaylistNotFound, message)
	case statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d %s", ErrTransient, statusCode, message)
	default:
		return fmt.Errorf("%w: %d %s", ErrUnexpectedHTTPStatus, statusCode, message)
	}
}

// apiErrorMessage extracts the error message from the API's error envelope.
func apiErrorMessage(body []byte) string {
	var envelope apiErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return string(body)
	}

	return envelope.Error.Message
}

// getAccessToken returns a valid access token,
// requesting a new one via the client-credentials flow when needed.
func (c *ClientImpl) getAccessToken(ctx context.Context) (string, error) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	route, err := url.JoinPath(c.accountsBaseURL, spotifyAPITokenURI)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, route, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}

	request.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransient, err)
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransient, err)
	}

	if response.StatusCode != http.StatusOK {
		// Invalid credentials come back as 400 (invalid_client) or 401.
		if response.StatusCode == http.StatusBadRequest || response.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("%w: %d %s", ErrAuthFailed, response.StatusCode, string(body))
		}

		return "", classifyAPIError(response.StatusCode, body)
	}

	var token tokenResponse
	if err = json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthFailed)
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)

	logger.Debugf(ctx, "Acquired access token, expires in %ds", token.ExpiresIn)

	return c.accessToken, nil
}

// invalidateToken drops the cached access token so the next request acquires a fresh one.
func (c *ClientImpl) invalidateToken() {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()

	c.accessToken = ""
	c.tokenExpiry = time.Time{}
}
