package spotify

import (
	"context"
	"fmt"
	"net/http"

	"playlist-api-go/logcolors"
	"playlist-api-go/stats"

	log "github.com/sirupsen/logrus"
)

const (
	playlistNamePrefix  = "AI Playlist: "
	descriptionTemplate = `Generated by AI for the prompt: "%s"`
)

// PlaylistName derives the playlist name from the original prompt.
func PlaylistName(prompt string) string {
	return playlistNamePrefix + prompt
}

// PlaylistDescription derives the playlist description from the prompt.
func PlaylistDescription(prompt string) string {
	return fmt.Sprintf(descriptionTemplate, prompt)
}

// CurrentUser resolves the identity behind the bearer token.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePlaylist creates a new private playlist owned by the user.
func (c *Client) CreatePlaylist(ctx context.Context, accessToken, userID, name, description string) (*Playlist, error) {
	body := createPlaylistRequest{
		Name:        name,
		Description: description,
		Public:      false,
	}

	var playlist Playlist
	endpoint := fmt.Sprintf("/users/%s/playlists", userID)
	if err := c.doRequest(ctx, http.MethodPost, endpoint, accessToken, body, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddTracks attaches the full ordered URI list in one bulk call.
func (c *Client) AddTracks(ctx context.Context, accessToken, playlistID string, trackURIs []string) error {
	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	return c.doRequest(ctx, http.MethodPost, endpoint, accessToken, addTracksRequest{URIs: trackURIs}, nil)
}

// BuildPlaylist runs the strictly ordered assembly sequence: resolve
// the user, create an empty private playlist named after the prompt,
// then attach the aggregated tracks. Any step returning ErrTokenExpired
// aborts the remaining steps. If track attachment fails after creation
// succeeded, the empty playlist is left in place.
func (c *Client) BuildPlaylist(ctx context.Context, accessToken, prompt string, trackURIs []string) (*Playlist, error) {
	user, err := c.CurrentUser(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	log.Infof("%s Resolved user: %s", logcolors.LogPlaylist, user.ID)

	playlist, err := c.CreatePlaylist(ctx, accessToken, user.ID, PlaylistName(prompt), PlaylistDescription(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	log.Infof("%s Created playlist: %s", logcolors.LogPlaylist, playlist.Name)

	if err := c.AddTracks(ctx, accessToken, playlist.ID, trackURIs); err != nil {
		return nil, fmt.Errorf("failed to add tracks: %w", err)
	}

	stats.Get().RecordPlaylistCreated(len(trackURIs))
	log.Infof("%s Added %d tracks to playlist %s", logcolors.LogTracks, len(trackURIs), playlist.ID)
	return playlist, nil
}
