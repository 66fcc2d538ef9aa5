package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      token validity, seconds
//	-l string   log verbosity level
//	-o string   comma-separated allowed CORS origins
//	-r string   redis address
//	-k string   credential store driver (postgres, redis, memory)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-o", "-r", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.StoreDriver, "k", config.StoreDriver, "credential store driver")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Seconds()), "token_validity_duration (in seconds)")
	origins := fs.String("o", "", "allowed CORS origins (comma-separated)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *tokenValidity > 0 {
		config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Second
	}
	if *origins != "" {
		config.AllowedOrigins = splitOrigins(*origins)
	}
}
