package stats

import (
	"sync/atomic"
	"time"
)

// Stats holds all server statistics with atomic counters
type Stats struct {
	// Server info
	StartTime time.Time

	// Request counters
	TotalRequests    atomic.Int64
	LoginRequests    atomic.Int64
	CallbackRequests atomic.Int64
	PlaylistRequests atomic.Int64
	StatsRequests    atomic.Int64
	HealthRequests   atomic.Int64
	OtherRequests    atomic.Int64

	// Auth flow
	TokenExchanges        atomic.Int64
	TokenExchangeFailures atomic.Int64
	StateMismatches       atomic.Int64

	// Playlist pipeline
	PlannerCalls         atomic.Int64
	PlannerParseFailures atomic.Int64
	SearchCalls          atomic.Int64
	PlaylistsCreated     atomic.Int64
	TracksAdded          atomic.Int64
	TokenExpiries        atomic.Int64

	// Rate limiting
	RateLimitAllowed  atomic.Int64
	RateLimitExceeded atomic.Int64

	// Response status codes
	Status2xx atomic.Int64
	Status3xx atomic.Int64
	Status4xx atomic.Int64
	Status5xx atomic.Int64

	// Response time tracking (in microseconds for precision)
	totalResponseTime atomic.Int64
	responseCount     atomic.Int64
	minResponseTime   atomic.Int64
	maxResponseTime   atomic.Int64

	// Composite endpoint response times (microseconds)
	playlistResponseTime  atomic.Int64
	playlistResponseCount atomic.Int64
}

// Global stats instance
var global = &Stats{
	StartTime: time.Now(),
}

func init() {
	// Initialize min to a high value
	global.minResponseTime.Store(int64(^uint64(0) >> 1)) // Max int64
}

// Get returns the global stats instance
func Get() *Stats {
	return global
}

// RecordRequest records a request to a specific endpoint
func (s *Stats) RecordRequest(endpoint string) {
	s.TotalRequests.Add(1)
	switch endpoint {
	case "/login":
		s.LoginRequests.Add(1)
	case "/callback":
		s.CallbackRequests.Add(1)
	case "/create-playlist":
		s.PlaylistRequests.Add(1)
	case "/stats":
		s.StatsRequests.Add(1)
	case "/health":
		s.HealthRequests.Add(1)
	default:
		s.OtherRequests.Add(1)
	}
}

// RecordTokenExchange records the outcome of a token exchange
func (s *Stats) RecordTokenExchange(success bool) {
	if success {
		s.TokenExchanges.Add(1)
	} else {
		s.TokenExchangeFailures.Add(1)
	}
}

// RecordStateMismatch records a rejected callback state
func (s *Stats) RecordStateMismatch() {
	s.StateMismatches.Add(1)
}

// RecordPlannerCall records one generative-text planning call
func (s *Stats) RecordPlannerCall() {
	s.PlannerCalls.Add(1)
}

// RecordPlannerParseFailure records an unparseable planner response
func (s *Stats) RecordPlannerParseFailure() {
	s.PlannerParseFailures.Add(1)
}

// RecordSearchCalls records n catalog search calls
func (s *Stats) RecordSearchCalls(n int) {
	s.SearchCalls.Add(int64(n))
}

// RecordPlaylistCreated records a created playlist and its track count
func (s *Stats) RecordPlaylistCreated(tracks int) {
	s.PlaylistsCreated.Add(1)
	s.TracksAdded.Add(int64(tracks))
}

// RecordTokenExpiry records a downstream 401 during the composite flow
func (s *Stats) RecordTokenExpiry() {
	s.TokenExpiries.Add(1)
}

// RecordRateLimit records rate limiter outcomes
func (s *Stats) RecordRateLimit(outcome string) {
	switch outcome {
	case "allowed":
		s.RateLimitAllowed.Add(1)
	case "exceeded":
		s.RateLimitExceeded.Add(1)
	}
}

// RecordStatusCode records a response status code
func (s *Stats) RecordStatusCode(code int) {
	switch {
	case code >= 200 && code < 300:
		s.Status2xx.Add(1)
	case code >= 300 && code < 400:
		s.Status3xx.Add(1)
	case code >= 400 && code < 500:
		s.Status4xx.Add(1)
	case code >= 500:
		s.Status5xx.Add(1)
	}
}

// RecordResponseTime records a response time
func (s *Stats) RecordResponseTime(duration time.Duration, endpoint string) {
	us := duration.Microseconds()

	s.totalResponseTime.Add(us)
	s.responseCount.Add(1)

	// Update min/max atomically
	for {
		current := s.minResponseTime.Load()
		if us >= current || s.minResponseTime.CompareAndSwap(current, us) {
			break
		}
	}
	for {
		current := s.maxResponseTime.Load()
		if us <= current || s.maxResponseTime.CompareAndSwap(current, us) {
			break
		}
	}

	if endpoint == "/create-playlist" {
		s.playlistResponseTime.Add(us)
		s.playlistResponseCount.Add(1)
	}
}

// Uptime returns the server uptime
func (s *Stats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

// AvgResponseTime returns the average response time
func (s *Stats) AvgResponseTime() time.Duration {
	count := s.responseCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(s.totalResponseTime.Load()/count) * time.Microsecond
}

// MinResponseTime returns the minimum response time
func (s *Stats) MinResponseTime() time.Duration {
	min := s.minResponseTime.Load()
	if min == int64(^uint64(0)>>1) {
		return 0
	}
	return time.Duration(min) * time.Microsecond
}

// MaxResponseTime returns the maximum response time
func (s *Stats) MaxResponseTime() time.Duration {
	return time.Duration(s.maxResponseTime.Load()) * time.Microsecond
}

// AvgPlaylistResponseTime returns the average response time for the composite endpoint
func (s *Stats) AvgPlaylistResponseTime() time.Duration {
	count := s.playlistResponseCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(s.playlistResponseTime.Load()/count) * time.Microsecond
}

// Snapshot returns a point-in-time snapshot of all stats
func (s *Stats) Snapshot() map[string]interface{} {
	uptime := s.Uptime()

	return map[string]interface{}{
		"server": map[string]interface{}{
			"start_time":     s.StartTime.Format(time.RFC3339),
			"uptime":         uptime.String(),
			"uptime_seconds": int64(uptime.Seconds()),
		},
		"requests": map[string]interface{}{
			"total":    s.TotalRequests.Load(),
			"login":    s.LoginRequests.Load(),
			"callback": s.CallbackRequests.Load(),
			"playlist": s.PlaylistRequests.Load(),
			"stats":    s.StatsRequests.Load(),
			"health":   s.HealthRequests.Load(),
			"other":    s.OtherRequests.Load(),
		},
		"auth": map[string]interface{}{
			"token_exchanges":         s.TokenExchanges.Load(),
			"token_exchange_failures": s.TokenExchangeFailures.Load(),
			"state_mismatches":        s.StateMismatches.Load(),
		},
		"pipeline": map[string]interface{}{
			"planner_calls":          s.PlannerCalls.Load(),
			"planner_parse_failures": s.PlannerParseFailures.Load(),
			"search_calls":           s.SearchCalls.Load(),
			"playlists_created":      s.PlaylistsCreated.Load(),
			"tracks_added":           s.TracksAdded.Load(),
			"token_expiries":         s.TokenExpiries.Load(),
		},
		"rate_limiting": map[string]interface{}{
			"allowed":  s.RateLimitAllowed.Load(),
			"exceeded": s.RateLimitExceeded.Load(),
		},
		"responses": map[string]interface{}{
			"2xx": s.Status2xx.Load(),
			"3xx": s.Status3xx.Load(),
			"4xx": s.Status4xx.Load(),
			"5xx": s.Status5xx.Load(),
		},
		"response_times": map[string]interface{}{
			"avg":          s.AvgResponseTime().String(),
			"min":          s.MinResponseTime().String(),
			"max":          s.MaxResponseTime().String(),
			"avg_playlist": s.AvgPlaylistResponseTime().String(),
		},
	}
}
