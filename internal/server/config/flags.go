package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/shareit/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-s", "-t", "-u", "-p", "-b", "-g", "-e", "-m", "-o", "-l", "-w"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session signing key
//	-t int      session validity, minutes
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-m string   table store: postgres | memory
//	-o string   object store: s3 | local | memory
//	-l string   local object store directory
//	-w string   password scheme: plain | bcrypt
//
// Unknown flags are filtered out first, so -c/-config can share the command line.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("shareit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "session signing key")
	sessionMinutes := fs.Int("t", int(cfg.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 root user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 root password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.TableStore, "m", cfg.TableStore, "table store (postgres|memory)")
	fs.StringVar(&cfg.StorageType, "o", cfg.StorageType, "object store (s3|local|memory)")
	fs.StringVar(&cfg.LocalStorageDir, "l", cfg.LocalStorageDir, "local object store directory")
	fs.StringVar(&cfg.PasswordScheme, "w", cfg.PasswordScheme, "password scheme (plain|bcrypt)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.SessionValidityDuration = time.Duration(*sessionMinutes) * time.Minute
		}
	})
	return nil
}
