package spotify

// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/

// TokenPair is the result of an authorization-code exchange. The
// backend never stores it; the frontend owns the tokens and presents
// the access token on every composite call.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// User represents the authenticated Spotify user.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Track represents a Spotify track. URI is the opaque identifier
// ("spotify:track:...") used for playlist mutation.
type Track struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// ExternalURLs holds externally browsable links for a resource.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Playlist represents a created playlist resource.
type Playlist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Public       bool         `json:"public"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// searchResponse is the envelope of a track search call.
type searchResponse struct {
	Tracks struct {
		Items []Track `json:"items"`
	} `json:"tracks"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}
