// Package account holds the single source of truth for "who is currently
// logged in".
//
// A Store keeps at most one Account. Readers use Account, IsLoggedIn and State;
// the only mutators are Set and Clear. Every mutation is handed to a Persister
// as a JSON state document stored under the store key (DefaultKey unless
// overridden), and NewStore restores that document on start:
//
//	{"account":{"id":"42","username":"alice"}}
//	{"account":null}
//
// The store never validates an Account. Setting one with an empty ID is
// accepted and simply leaves IsLoggedIn false.
//
// # Errors
//
// A failed save is returned wrapped in ErrPersist after the in-memory state
// has already changed. An adapter failure during restore is returned from
// NewStore wrapped in ErrRestore; an undecodable document is logged and the
// store starts logged out.
package account
