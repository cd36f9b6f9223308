package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/flagx"
)

// parseFlags overlays cfg with the short flags listed in the package doc.
// Unrelated arguments (including -c/-config) are filtered out first.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-b", "-k", "-f", "-d", "-r", "-p", "-l", "-t"})

	fs := flag.NewFlagSet("accountkeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "persistence backend")
	fs.StringVar(&cfg.StoreKey, "k", cfg.StoreKey, "state document key")
	fs.StringVar(&cfg.SQLiteFile, "f", cfg.SQLiteFile, "sqlite database file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres dsn")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.Passphrase, "p", cfg.Passphrase, "state passphrase")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.PersistTimeout.Seconds()), "persistence timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// keep sub-second JSON values unless -t was given explicitly
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.PersistTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
