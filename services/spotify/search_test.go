package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"sync/atomic"
	"testing"
)

// searchServer returns a fake catalog API that answers /search with
// resultsPerQuery tracks whose URIs embed the query string.
func searchServer(t *testing.T, resultsPerQuery int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("type"); got != "track" {
			t.Errorf("Expected type=track, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("Expected limit=5, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer auth, got %q", got)
		}

		query := r.URL.Query().Get("q")
		items := make([]Track, 0, resultsPerQuery)
		for i := 0; i < resultsPerQuery; i++ {
			items = append(items, Track{
				ID:   query + "-" + strconv.Itoa(i),
				Name: query,
				URI:  "spotify:track:" + query + "-" + strconv.Itoa(i),
			})
		}

		resp := searchResponse{}
		resp.Tracks.Items = items
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSearchTracksAggregation(t *testing.T) {
	server := searchServer(t, 2)
	defer server.Close()

	client := newTestClient(defaultAuthBaseURL, server.URL)
	queries := []string{"lofi rain", "coffee shop jazz", "chill piano"}

	uris, err := client.SearchTracks(context.Background(), "test-token", queries)
	if err != nil {
		t.Fatalf("SearchTracks failed: %v", err)
	}

	// N queries x M results, in query-submission order
	expected := []string{
		"spotify:track:lofi rain-0",
		"spotify:track:lofi rain-1",
		"spotify:track:coffee shop jazz-0",
		"spotify:track:coffee shop jazz-1",
		"spotify:track:chill piano-0",
		"spotify:track:chill piano-1",
	}
	if !reflect.DeepEqual(uris, expected) {
		t.Errorf("URIs = %v, want %v", uris, expected)
	}
}

func TestSearchTracksKeepsDuplicates(t *testing.T) {
	server := searchServer(t, 1)
	defer server.Close()

	client := newTestClient(defaultAuthBaseURL, server.URL)

	// Identical queries produce identical URIs; no deduplication
	uris, err := client.SearchTracks(context.Background(), "test-token", []string{"same", "same"})
	if err != nil {
		t.Fatalf("SearchTracks failed: %v", err)
	}

	expected := []string{"spotify:track:same-0", "spotify:track:same-0"}
	if !reflect.DeepEqual(uris, expected) {
		t.Errorf("URIs = %v, want %v", uris, expected)
	}
}

func TestSearchTracksNoResults(t *testing.T) {
	server := searchServer(t, 0)
	defer server.Close()

	client := newTestClient(defaultAuthBaseURL, server.URL)

	_, err := client.SearchTracks(context.Background(), "test-token", []string{"obscure query"})
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults, got %v", err)
	}
}

func TestSearchTracksEmptyQuerySet(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := newTestClient(defaultAuthBaseURL, server.URL)

	_, err := client.SearchTracks(context.Background(), "test-token", nil)
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("Expected ErrNoResults for empty query set, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("Expected zero search calls, got %d", calls.Load())
	}
}

func TestSearchTracksUnauthorizedAbortsBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "expired" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		resp := searchResponse{}
		resp.Tracks.Items = []Track{{URI: "spotify:track:ok"}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(defaultAuthBaseURL, server.URL)

	_, err := client.SearchTracks(context.Background(), "test-token", []string{"fine", "expired", "also fine"})
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestSearchTracksTransportFailureAbortsBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "upstream exploded")
			return
		}
		resp := searchResponse{}
		resp.Tracks.Items = []Track{{URI: "spotify:track:ok"}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(defaultAuthBaseURL, server.URL)

	_, err := client.SearchTracks(context.Background(), "test-token", []string{"fine", "broken"})
	if err == nil {
		t.Fatal("Expected error when one search fails")
	}
	if errors.Is(err, ErrNoResults) {
		t.Errorf("Transport failure must not be reported as ErrNoResults, got %v", err)
	}
}
