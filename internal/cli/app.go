package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/accountkeeper/internal/account"
	"github.com/dmitrijs2005/accountkeeper/internal/config"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/persistence"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *account.Store
	closer io.Closer

	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewApp opens the configured persistence backend and restores the account store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	p, closer, err := persistence.Open(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("persistence init error: %w", err)
	}

	store, err := account.NewStore(ctx, p, account.WithKey(c.StoreKey), account.WithLogger(logger))
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	a := newApp(c, logger, store, os.Stdin, os.Stdout)
	a.closer = closer
	a.interactive = stdinIsTerminal()
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, store *account.Store, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		store:  store,
		reader: bufio.NewReader(in),
		out:    out,
	}
	store.Subscribe(a.logTransition)
	return a
}

func (a *App) logTransition(prev, next *account.Account) {
	ctx := context.Background()
	switch {
	case next != nil:
		a.logger.Info(ctx, "account set", "username", next.Username, "logged_in", next.ID != "")
	case prev != nil:
		a.logger.Info(ctx, "account cleared", "username", prev.Username)
	}
}

// Run starts the REPL and returns when input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.interactive {
		fmt.Fprintln(a.out, "Welcome to accountkeeper (type 'help' for commands)")
	}
	runREPL(ctx, a, a.prompt, a.reader, a.out)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.store.IsLoggedIn()
}

// prompt renders "ak> " or "ak (alice)> "; empty when stdin is not a terminal.
func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	if acc := a.store.Account(); acc != nil && acc.Username != "" {
		return fmt.Sprintf("ak (%s)> ", acc.Username)
	}
	return "ak> "
}
