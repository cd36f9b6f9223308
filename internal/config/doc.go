// Package config loads runtime configuration for accountkeeper.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   persistence backend: memory, sqlite, postgres, redis, s3
//	-k string   key the state document is stored under
//	-f string   SQLite database file (relative to the data dir)
//	-d string   PostgreSQL DSN
//	-r string   Redis address (host:port)
//	-p string   passphrase used to seal the saved state
//	-l string   log level: debug, info, warn, error
//	-t int      persistence timeout (seconds)
//
// # JSON schema
//
// Intervals use timex.Duration, so "3s" and integer nanoseconds both work:
//
//	{
//	  "backend": "redis",
//	  "store_key": "app",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_ttl": "720h",
//	  "persist_timeout": "3s"
//	}
package config
