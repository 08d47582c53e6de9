package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Red    = "\033[31m"
)

// Auth flow log prefixes
const (
	LogLogin    = Green + "[Auth:Login]" + Reset
	LogCallback = Green + "[Auth:Callback]" + Reset
	LogState    = Cyan + "[Auth:State]" + Reset
	LogExchange = Blue + "[Auth:Exchange]" + Reset
)

// Playlist pipeline log prefixes
const (
	LogPlanner  = Purple + "[Planner]" + Reset
	LogSearch   = Blue + "[Search]" + Reset
	LogPlaylist = Green + "[Playlist]" + Reset
	LogTracks   = Blue + "[Tracks]" + Reset
	LogHTTP     = Cyan + "[HTTP]" + Reset
)

// Rate limiting log prefixes
const (
	LogRateLimit = Purple + "[RateLimit]" + Reset
)

// Server/Init log prefixes
const (
	LogServer = Green + "[Server]" + Reset
	LogConfig = Cyan + "[Config]" + Reset
	LogStats  = Blue + "[Stats]" + Reset
)
