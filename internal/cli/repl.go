package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Generate(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Save(ctx context.Context, args []string) error
	List(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on EOF or when the user types "exit" or "quit".
//
// Handler errors are ignored here; handlers report them to the user
// themselves so the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "sqrity %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
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
				fmt.Fprintln(w, "Available commands: generate [length] [-no-upper|-no-lower|-no-digits|-no-symbols], show, save [app], (l)ist, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, generate, show, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "generate", "gen":
			_ = a.Generate(ctx, args)

		case "show":
			_ = a.Show(ctx)

		case "save":
			_ = a.Save(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
