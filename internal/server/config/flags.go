package config

import (
	"flag"
	"os"
	"time"

	"github.com/rivalrockets/rivalrockets/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-x string   external base URL for hyperlink building
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-e string   admin email
//	-t int      auth token validity, minutes
//	-l int      email token validity, minutes
//	-m int      machines per page
//	-r int      revisions per page
//	-k int      comments per page
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
// Duration flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-x", "-d", "-s", "-e", "-t", "-l", "-m", "-r", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.ExternalBaseURL, "x", config.ExternalBaseURL, "external base URL")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.AdminEmail, "e", config.AdminEmail, "administrator email")

	authTokenValidity := fs.Int("t", int(config.AuthTokenValidityDuration.Minutes()), "auth token validity (in minutes)")
	emailTokenValidity := fs.Int("l", int(config.EmailTokenValidityDuration.Minutes()), "email token validity (in minutes)")

	fs.IntVar(&config.MachinesPerPage, "m", config.MachinesPerPage, "machines per page")
	fs.IntVar(&config.RevisionsPerPage, "r", config.RevisionsPerPage, "revisions per page")
	fs.IntVar(&config.CommentsPerPage, "k", config.CommentsPerPage, "comments per page")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AuthTokenValidityDuration = time.Duration(*authTokenValidity) * time.Minute
	config.EmailTokenValidityDuration = time.Duration(*emailTokenValidity) * time.Minute
}
