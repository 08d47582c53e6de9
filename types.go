package main

// PlaylistRequest is the JSON body of the composite creation endpoint.
// The bearer token is carried explicitly on every request; the backend
// never caches it.
type PlaylistRequest struct {
	Prompt      string `json:"prompt"`
	AccessToken string `json:"accessToken"`
}

// PlaylistResponse is the composite endpoint's success payload
type PlaylistResponse struct {
	Message     string `json:"message"`
	PlaylistURL string `json:"playlistUrl"`
}

// ErrorResponse is the JSON shape of every non-2xx API response
type ErrorResponse struct {
	Error string `json:"error"`
}
