package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST API
//	-t int      request timeout in seconds
//	-d string   SQLite file for the session store
//	-k string   Valkey address (host:port); switches the session store to Valkey
//	-l string   log level (debug, info, warn, error)
//	-b string   S3 bucket for prescription documents
//	-g string   S3 region
//	-e string   S3 endpoint override (MinIO and friends)
//	-u string   S3 access key
//	-p string   S3 secret key
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-k", "-l", "-b", "-g", "-e", "-u", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "session database file")
	fs.StringVar(&cfg.ValkeyAddr, "k", cfg.ValkeyAddr, "valkey address for the session store")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "s3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "s3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "s3 endpoint")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "s3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "s3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
