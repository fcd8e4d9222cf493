package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	MongoURI     string // MongoDB connection string
	MongoDB      string // MongoDB database name
	JWTSecret    string // secret used to sign access tokens
	TokenTTLDays int    // access token time‑to‑live in days
	StripeSecret string // Stripe secret key for payment intents
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The port defaults
// to 5000 and the token lifetime to seven days when not set.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),                            // environment (dev/test/prod)
		Port:         getenv("APP_PORT", "5000"),                 // port to bind the HTTP server
		MongoURI:     must("MONGO_URI"),                          // document store connection string
		MongoDB:      must("MONGO_DB"),                           // database holding the five collections
		JWTSecret:    must("JWT_SECRET"),                         // secret used for signing tokens
		TokenTTLDays: atoi(getenv("ACCESS_TOKEN_TTL_DAYS", "7")), // TTL for access tokens in days
		StripeSecret: must("STRIPE_SECRET_KEY"),                  // payment processor credential
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an optional environment variable, falling
// back to def when the variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// atoi converts a string to an int, returning zero on failure.  Callers
// pass values that already carry a sane default via getenv.
func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
