package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"playlist-api-go/config"
	"playlist-api-go/logcolors"
	"playlist-api-go/stats"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	defaultAuthBaseURL = "https://accounts.spotify.com"
	defaultAPIBaseURL  = "https://api.spotify.com/v1"
)

// Scopes requested during the authorization redirect.
var Scopes = []string{
	"user-read-private",
	"user-read-email",
	"playlist-modify-public",
	"playlist-modify-private",
}

var (
	// ErrTokenExpired marks a downstream 401: the bearer token is
	// expired or invalid and the caller must re-authenticate.
	ErrTokenExpired = errors.New("spotify token expired")

	// ErrNoResults marks a fully successful search batch that produced
	// zero tracks. This is a normal outcome, not a server failure.
	ErrNoResults = errors.New("no songs found")
)

// Client talks to the Spotify accounts and Web API endpoints. The
// bearer token is an explicit argument on every authenticated call;
// the client itself holds no per-user state.
type Client struct {
	AuthBaseURL string
	APIBaseURL  string
	HTTPClient  *http.Client

	clientID     string
	clientSecret string
	redirectURI  string
	searchLimit  int
}

// NewClient builds a Spotify client from the loaded configuration.
func NewClient() *Client {
	conf := config.Get()
	return &Client{
		AuthBaseURL: defaultAuthBaseURL,
		APIBaseURL:  defaultAPIBaseURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(conf.Configuration.HTTPTimeoutInSeconds) * time.Second,
		},
		clientID:     conf.Configuration.SpotifyClientID,
		clientSecret: conf.Configuration.SpotifyClientSecret,
		redirectURI:  conf.Configuration.RedirectURI,
		searchLimit:  conf.Configuration.SearchResultLimit,
	}
}

// oauthConfig builds the oauth2 configuration for the authorize and
// token endpoints. AuthStyleInHeader selects HTTP Basic client
// authentication at the token endpoint, which Spotify requires.
func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  c.redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthBaseURL + "/authorize",
			TokenURL:  c.AuthBaseURL + "/api/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// AuthCodeURL returns the authorization redirect URL for a login
// attempt. show_dialog forces the consent prompt on every login.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthConfig().AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange converts an authorization code into a token pair via the
// provider's token endpoint.
func (c *Client) Exchange(ctx context.Context, code string) (*TokenPair, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)

	token, err := c.oauthConfig().Exchange(ctx, code)
	if err != nil {
		stats.Get().RecordTokenExchange(false)
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	pair := &TokenPair{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if v, ok := token.Extra("expires_in").(float64); ok {
		pair.ExpiresIn = int(v)
	} else if !token.Expiry.IsZero() {
		pair.ExpiresIn = int(time.Until(token.Expiry).Seconds())
	}

	stats.Get().RecordTokenExchange(true)
	log.Infof("%s Exchanged authorization code for token pair", logcolors.LogExchange)
	return pair, nil
}

// doRequest performs one authenticated Web API call. A 401 response is
// reported as ErrTokenExpired so callers can short-circuit.
func (c *Client) doRequest(ctx context.Context, method, endpoint, accessToken string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.APIBaseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		stats.Get().RecordTokenExpiry()
		log.Warnf("%s %s %s returned 401", logcolors.LogHTTP, method, endpoint)
		return ErrTokenExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Errorf("%s %s %s returned status %d: %s", logcolors.LogHTTP, method, endpoint, resp.StatusCode, string(respBody))
		return fmt.Errorf("spotify API returned status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
