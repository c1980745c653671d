package types

import "time"

// AppConfig holds application configuration values.
type AppConfig struct {
	Host  string // Bind address
	Port  int    // Port to listen on
	Debug bool   // Debug mode: verbose logging and profiling endpoints

	Environment     string        // Reported by the health endpoint
	LogLevel        string        // Minimum log level
	ReadTimeout     time.Duration // http.Server read timeout
	WriteTimeout    time.Duration // http.Server write timeout
	IdleTimeout     time.Duration // http.Server keep-alive timeout
	ShutdownTimeout time.Duration // Budget for draining in-flight requests
	CORSOrigins     []string      // Allowed CORS origins, "*" for any
	MetricsEnabled  bool          // Serve Prometheus metrics on /metrics

	DatabaseURL string // Optional PostgreSQL connection string pinged by readiness
	RedisURL    string // Optional Redis address pinged by readiness
}
