package config

import (
	"flag"
	"os"
	"time"

	"github.com/bobadragon/storefront/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-d string   path of the local cache database
//	-i int      store status refresh interval in seconds
//	-q string   query string from a payment redirect
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "path of the local cache database")
	statusInterval := fs.Int("i", int(cfg.StoreStatusInterval.Seconds()), "store status refresh interval (in seconds)")
	fs.StringVar(&cfg.StartupQuery, "q", cfg.StartupQuery, "query string from a payment redirect")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StoreStatusInterval = time.Duration(*statusInterval) * time.Second
}
