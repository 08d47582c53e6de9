package main

import (
	"net/http"
	"os"
	"time"

	"playlist-api-go/authstate"
	"playlist-api-go/config"
	"playlist-api-go/logcolors"
	"playlist-api-go/middleware"
	"playlist-api-go/services/ai"
	"playlist-api-go/services/spotify"
	"playlist-api-go/stats"

	"golang.org/x/time/rate"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

var conf = config.Get()

// Collaborators wired up in main; tests swap these for fakes
var (
	stateStore    *authstate.Store
	spotifyClient *spotify.Client
	aiClient      *ai.Client
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	err := godotenv.Load()
	if err != nil {
		log.Warn("Error loading .env file, using environment variables")
	}
}

func main() {
	stateStore = authstate.NewStore(time.Duration(conf.Configuration.StateTTLInSeconds) * time.Second)
	spotifyClient = spotify.NewClient()
	aiClient = ai.NewClient()

	if conf.Configuration.SpotifyClientID == "" || conf.Configuration.SpotifyClientSecret == "" {
		log.Warnf("%s Spotify client credentials are not configured, the auth flow will fail", logcolors.LogConfig)
	}
	if conf.Configuration.GeminiAPIKey == "" {
		log.Warnf("%s Gemini API key is not configured, playlist creation will fail", logcolors.LogConfig)
	}

	router := mux.NewRouter()
	setupRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{conf.Configuration.FrontendURI, "http://localhost:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	})

	limiter := middleware.NewIPRateLimiter(rate.Limit(conf.Configuration.RateLimitPerSecond), conf.Configuration.RateLimitBurstLimit)

	// logging middleware
	loggedRouter := middleware.LoggingMiddleware(router)
	// chain cors middleware
	corsHandler := c.Handler(loggedRouter)

	// chain rate limiter
	handler := limitMiddleware(corsHandler, limiter)

	log.Infof("%s Server listening on port %s", logcolors.LogServer, port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func limitMiddleware(next http.Handler, limiter *middleware.IPRateLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.GetLimiter(r.RemoteAddr).Allow() {
			stats.Get().RecordRateLimit("exceeded")
			log.Warnf("%s Rate limit exceeded for %s", logcolors.LogRateLimit, r.RemoteAddr)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		stats.Get().RecordRateLimit("allowed")
		next.ServeHTTP(w, r)
	})
}
