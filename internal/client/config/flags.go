package config

import (
	"flag"
	"os"

	"draftpad/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-r string   base URL of the sync backend
//	-s string   public base URL for sharing links
//	-d string   path to the SQLite database file
//	-l string   path to the legacy flat JSON store
//
// Arguments are filtered with flagx.FilterArgs so flags owned by other
// components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RemoteBaseURL, "r", cfg.RemoteBaseURL, "base URL of the sync backend")
	fs.StringVar(&cfg.ShareBaseURL, "s", cfg.ShareBaseURL, "public base URL for sharing links")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&cfg.LegacyStorePath, "l", cfg.LegacyStorePath, "path to the legacy flat JSON store")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
