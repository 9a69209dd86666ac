package config

import (
	"flag"
	"os"

	"github.com/avolkov/storefront/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     PostgreSQL DSN
//	-s string     session signing secret
//	-t duration   session token lifetime (e.g., "24h")
//	-l int        minimum password length
//	-r string     extra route rules ("class:pattern" comma-separated)
//	-i string     sign-in redirect path
//	-m string     protected home redirect path
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-r", "-i", "-m"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session signing secret")

	ttl := fs.Duration("t", config.SessionTTL, "session token lifetime")

	fs.IntVar(&config.MinPasswordLength, "l", config.MinPasswordLength, "minimum password length")
	fs.StringVar(&config.RouteRules, "r", config.RouteRules, "extra route classification rules")
	fs.StringVar(&config.SignInPath, "i", config.SignInPath, "sign-in redirect path")
	fs.StringVar(&config.ProtectedHome, "m", config.ProtectedHome, "protected home redirect path")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.SessionTTL = *ttl
	return nil
}
