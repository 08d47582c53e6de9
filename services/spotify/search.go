package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"playlist-api-go/logcolors"
	"playlist-api-go/stats"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SearchTracks issues one track search per query concurrently and
// flattens the resulting URIs in query-submission order, duplicates
// included. Any failing search fails the whole batch; in-flight
// siblings finish but their results are discarded. A fully successful
// batch with zero tracks is ErrNoResults.
func (c *Client) SearchTracks(ctx context.Context, accessToken string, queries []string) ([]string, error) {
	log.Infof("%s Searching Spotify with %d queries...", logcolors.LogSearch, len(queries))
	stats.Get().RecordSearchCalls(len(queries))

	perQuery := make([][]string, len(queries))

	var g errgroup.Group
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			uris, err := c.searchTrackURIs(ctx, accessToken, query)
			if err != nil {
				return fmt.Errorf("search %q: %w", query, err)
			}
			perQuery[i] = uris
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var trackURIs []string
	for _, uris := range perQuery {
		trackURIs = append(trackURIs, uris...)
	}

	if len(trackURIs) == 0 {
		return nil, ErrNoResults
	}

	log.Infof("%s Collected %d track URIs", logcolors.LogSearch, len(trackURIs))
	return trackURIs, nil
}

// searchTrackURIs runs one track search and projects the items to URIs.
func (c *Client) searchTrackURIs(ctx context.Context, accessToken, query string) ([]string, error) {
	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), c.searchLimit)

	var resp searchResponse
	if err := c.doRequest(ctx, http.MethodGet, endpoint, accessToken, nil, &resp); err != nil {
		return nil, err
	}

	uris := make([]string, 0, len(resp.Tracks.Items))
	for _, track := range resp.Tracks.Items {
		uris = append(uris, track.URI)
	}
	return uris, nil
}
