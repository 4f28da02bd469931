package config

import (
	"flag"
	"os"
	"time"

	"github.com/webident/authcore/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   auth-token HMAC secret
//	-k string   user-data-token HMAC secret
//	-t int      auth token validity, minutes
//	-r int      reset credential validity, minutes
//	-m string   SMTP host
//	-o int      SMTP port
//	-u string   SMTP username
//	-p string   SMTP password
//	-f string   mail From address
//	-w string   client base URL for reset links
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-k", "-t", "-r", "-m", "-o", "-u", "-p", "-f", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AuthTokenSecret, "s", config.AuthTokenSecret, "auth token secret key")
	fs.StringVar(&config.UserDataTokenSecret, "k", config.UserDataTokenSecret, "user data token secret key")

	authTokenTTL := fs.Int("t", int(config.AuthTokenTTL.Minutes()), "auth token validity (in minutes)")
	resetTokenTTL := fs.Int("r", int(config.ResetTokenTTL.Minutes()), "reset credential validity (in minutes)")

	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "o", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUser, "u", config.SMTPUser, "SMTP username")
	fs.StringVar(&config.SMTPPassword, "p", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.MailFrom, "f", config.MailFrom, "mail From address")
	fs.StringVar(&config.ClientBaseURL, "w", config.ClientBaseURL, "client base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AuthTokenTTL = time.Duration(*authTokenTTL) * time.Minute
	config.ResetTokenTTL = time.Duration(*resetTokenTTL) * time.Minute
}
