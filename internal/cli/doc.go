// Package cli is the interactive front end of accountkeeper.
//
// NewApp wires configuration, logging, the persistence backend and the
// account store; Run starts a read–eval–print loop on stdin:
//
//	login [username] [id]   set the current account (id defaults to a new UUID)
//	logout                  clear the current account
//	whoami                  show the current account
//	status                  show login state and persistence backend
//	help                    list commands
//	exit | quit             leave
//
// The prompt shows the username while an account is set. When stdin is not a
// terminal no prompts are printed, so the CLI can be scripted:
//
//	printf 'login alice\nwhoami\n' | accountkeeper -b sqlite
package cli
