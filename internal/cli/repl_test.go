package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	args     [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.calls = append(f.calls, "login")
	f.args = append(f.args, args)
	f.loggedIn = true
	return nil
}

func (f *fakeExec) Logout(_ context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func (f *fakeExec) WhoAmI(_ context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}

func (f *fakeExec) Status(_ context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func run(t *testing.T, exec execIface, prompt string, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return prompt }, reader, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}

	out := run(t, exec, "",
		"help",
		"login alice 42",
		"",
		"help",
		"whoami",
		"status",
		"logout",
		"foobar",
		"exit",
		"whoami",
	)

	assert.Equal(t, []string{"login", "whoami", "status", "logout"}, exec.calls)
	assert.Equal(t, [][]string{{"alice", "42"}}, exec.args)
	assert.Contains(t, out, "Available commands: login [username] [id]")
	assert.Contains(t, out, "Available commands: whoami, status, login, logout, exit")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}

	out := run(t, exec, "", "login", "whoami")

	assert.Equal(t, []string{"login", "whoami"}, exec.calls)
	assert.NotContains(t, out, "Bye!")
}

func TestRunREPL_QuitAlias(t *testing.T) {
	exec := &fakeExec{}

	out := run(t, exec, "", "quit", "login")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_PrintsPrompt(t *testing.T) {
	out := run(t, &fakeExec{}, "ak> ", "exit")

	assert.True(t, strings.HasPrefix(out, "ak> "))
}

func TestRunREPL_StopsWhenContextCancelled(t *testing.T) {
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := bufio.NewReader(strings.NewReader("whoami\nstatus\n"))
	runREPL(ctx, exec, func() string { return "" }, reader, &bytes.Buffer{})

	assert.Equal(t, []string{"whoami"}, exec.calls)
}
