package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"playlist-api-go/logcolors"
	"playlist-api-go/services/ai"
	"playlist-api-go/services/spotify"
	"playlist-api-go/stats"

	log "github.com/sirupsen/logrus"
)

const stateCookieName = "spotify_auth_state"

// login starts the authorization-code flow: issue a one-time state
// value, hand it to the browser as a cookie, and redirect to the
// provider's consent page.
func login(w http.ResponseWriter, r *http.Request) {
	state, err := stateStore.Issue()
	if err != nil {
		log.Errorf("%s Failed to issue state: %v", logcolors.LogLogin, err)
		Respond(w, r).Error(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start login"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   conf.Configuration.StateTTLInSeconds,
		HttpOnly: true,
	})

	http.Redirect(w, r, spotifyClient.AuthCodeURL(state), http.StatusFound)
}

// callback handles the provider redirect. The state from the query must
// match the cookie and still be present in the single-use store; only
// then is the code exchanged. Tokens travel back to the frontend in the
// URL fragment so they never reach another server.
func callback(w http.ResponseWriter, r *http.Request) {
	frontend := conf.Configuration.FrontendURI

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	cookie, err := r.Cookie(stateCookieName)
	if state == "" || err != nil || cookie.Value != state || !stateStore.Consume(state) {
		stats.Get().RecordStateMismatch()
		log.Warnf("%s State mismatch, aborting exchange", logcolors.LogCallback)
		http.Redirect(w, r, frontend+"?error=state_mismatch", http.StatusFound)
		return
	}

	// State is spent; drop the cookie so a replayed code fails at the
	// provider instead of being re-validated here
	http.SetCookie(w, &http.Cookie{
		Name:   stateCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	pair, err := spotifyClient.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("%s Token exchange failed: %v", logcolors.LogCallback, err)
		http.Redirect(w, r, frontend+"?error=invalid_token", http.StatusFound)
		return
	}

	fragment := url.Values{
		"access_token":  {pair.AccessToken},
		"refresh_token": {pair.RefreshToken},
		"expires_in":    {strconv.Itoa(pair.ExpiresIn)},
	}
	http.Redirect(w, r, frontend+"/#"+fragment.Encode(), http.StatusFound)
}

// createPlaylist is the composite endpoint: plan queries with the AI,
// search the catalog, assemble the playlist. Each stage's failure maps
// to one terminal HTTP response; no stage is retried.
func createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" || req.AccessToken == "" {
		Respond(w, r).Error(http.StatusBadRequest, ErrorResponse{Error: "Prompt and access token are required."})
		return
	}

	ctx := r.Context()

	queries, err := aiClient.PlanSearchQueries(ctx, req.Prompt)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	trackURIs, err := spotifyClient.SearchTracks(ctx, req.AccessToken, queries)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	playlist, err := spotifyClient.BuildPlaylist(ctx, req.AccessToken, req.Prompt, trackURIs)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	Respond(w, r).JSON(PlaylistResponse{
		Message:     "Playlist created successfully!",
		PlaylistURL: playlist.ExternalURLs.Spotify,
	})
}

// respondPipelineError maps a pipeline stage failure to its terminal
// HTTP response. TokenExpired is the one condition the frontend reacts
// to specially, by clearing its cached tokens and forcing re-login.
func respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ai.ErrEmptyPrompt):
		Respond(w, r).Error(http.StatusBadRequest, ErrorResponse{Error: "Prompt and access token are required."})
	case errors.Is(err, spotify.ErrTokenExpired):
		Respond(w, r).Error(http.StatusUnauthorized, ErrorResponse{Error: "Spotify token expired."})
	case errors.Is(err, spotify.ErrNoResults):
		Respond(w, r).Error(http.StatusNotFound, ErrorResponse{Error: "No songs found for that prompt."})
	case errors.Is(err, ai.ErrBadResponse):
		Respond(w, r).Error(http.StatusInternalServerError, ErrorResponse{Error: "AI did not return valid JSON."})
	default:
		log.Errorf("%s Unclassified pipeline failure: %v", logcolors.LogPlaylist, err)
		Respond(w, r).Error(http.StatusInternalServerError, ErrorResponse{Error: "An internal server error occurred."})
	}
}

func getHealthStatus(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status": "ok",
	}

	if conf.Configuration.SpotifyClientID == "" || conf.Configuration.SpotifyClientSecret == "" {
		health["status"] = "unhealthy"
		health["error"] = "spotify client credentials not configured"
	} else if conf.Configuration.GeminiAPIKey == "" {
		health["status"] = "degraded"
		health["warning"] = "gemini API key not configured"
	}

	Respond(w, r).JSON(health)
}

func getStats(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != conf.Configuration.StatsAccessToken || conf.Configuration.StatsAccessToken == "" {
		log.Warnf("%s Rejected stats request from %s", logcolors.LogStats, r.RemoteAddr)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	Respond(w, r).JSON(stats.Get().Snapshot())
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	Respond(w, r).JSON(map[string]interface{}{
		"help": "GET /login starts the Spotify authorization flow. POST /create-playlist with {\"prompt\": ..., \"accessToken\": ...} turns a prompt into a curated playlist.",
	})
}
