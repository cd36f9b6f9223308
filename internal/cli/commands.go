package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accountkeeper/internal/account"
	"github.com/google/uuid"
)

// newID is a test seam for uuid generation.
var newID = uuid.NewString

// Login sets the current account. The username is prompted for when not
// given; a missing id is generated. Persistence failures are reported but
// the account stays set for this session.
func (a *App) Login(ctx context.Context, args []string) error {
	var username, id string
	if len(args) > 0 {
		username = args[0]
	}
	if len(args) > 1 {
		id = args[1]
	}

	if username == "" {
		var err error
		username, err = GetSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
	}
	if id == "" {
		id = newID()
	}

	if err := a.store.Set(ctx, account.Account{ID: id, Username: username}); err != nil {
		fmt.Fprintf(a.out, "Logged in as %s, but the session was not saved: %v\n", username, err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		fmt.Fprintf(a.out, "Logged out, but the session was not saved: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	acc := a.store.Account()
	if acc == nil {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (id %s)\n", acc.Username, acc.ID)
	return nil
}

func (a *App) Status(_ context.Context) error {
	fmt.Fprintf(a.out, "logged in: %t\nbackend: %s\nkey: %s\n",
		a.store.IsLoggedIn(), a.config.Backend, a.store.Key())
	return nil
}
