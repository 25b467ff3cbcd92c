package cmd

import "time"

// Config carries every runtime setting of the service, sourced from the
// environment at startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	// RedisAddr switches the event bus to Redis pub/sub when set; empty
	// keeps events in-process.
	RedisAddr string

	// ExpoPushURL is the Expo push API endpoint.
	ExpoPushURL string

	// LockTimeout bounds how long a claim transaction waits on a held
	// row lock before failing as transient.
	LockTimeout time.Duration

	// SearchLeadTime is how far before pickup a scheduled order enters
	// the driver pool.
	SearchLeadTime time.Duration
}
