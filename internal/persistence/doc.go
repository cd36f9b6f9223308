// Package persistence provides the storage backends behind account.Persister
// and the factory that picks one from configuration.
//
// Backends
//
//   - memory:   process-local map, lost on exit
//   - sqlite:   metadata table in a local SQLite file (goose-migrated)
//   - postgres: metadata table in PostgreSQL via pgx (goose-migrated)
//   - redis:    one string key per store, optional TTL as retention policy
//   - s3:       one object per store in an S3-compatible bucket
//
// Any backend can be wrapped with Sealed (passphrase-derived AES-GCM) and is
// wrapped with WithTimeout when a persistence timeout is configured.
package persistence
