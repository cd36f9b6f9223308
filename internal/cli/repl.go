package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// Errors returned by handlers are not fatal: handlers report to the user
// themselves and the loop continues.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if p := promptFn(); p != "" {
			fmt.Fprint(out, p)
		}

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: whoami, status, login, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: login [username] [id], whoami, status, exit")
			}

		case "login":
			_ = a.Login(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}
