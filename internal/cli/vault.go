package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sqrity/sqrity/internal/common"
	"github.com/sqrity/sqrity/internal/generator"
)

var errNotLoggedIn = errors.New("not logged in")

// parseGenerateArgs reads an optional length and -no-<class> switches.
func parseGenerateArgs(args []string, defaultLength int) (int, generator.Charset, error) {
	cs := generator.AllClasses
	length := defaultLength
	for _, arg := range args {
		switch arg {
		case "-no-upper":
			cs.Upper = false
		case "-no-lower":
			cs.Lower = false
		case "-no-digits":
			cs.Digits = false
		case "-no-symbols":
			cs.Symbols = false
		default:
			if _, err := strconv.Atoi(arg); err != nil && strings.HasPrefix(arg, "-") {
				return 0, cs, fmt.Errorf("unknown option %q", arg)
			}
			length = generator.ParseLength(arg)
		}
	}
	return length, cs, nil
}

// Generate draws a new candidate secret and remembers it for show and save.
func (a *App) Generate(ctx context.Context, args []string) error {
	length, cs, err := parseGenerateArgs(args, a.defaultLength)
	if err != nil {
		a.println("Error:", err)
		return err
	}

	secret, err := a.generator.Generate(length, cs)
	if err != nil {
		if errors.Is(err, common.ErrEmptyAlphabet) {
			a.println("Select at least one character set.")
		} else {
			a.println("Error:", err)
		}
		return err
	}

	a.lastGenerated = secret
	a.println("Generated password:", secret)
	return nil
}

// Show prints the last generated secret.
func (a *App) Show(ctx context.Context) error {
	if a.lastGenerated == "" {
		a.println("No password generated yet.")
		return nil
	}
	a.println("Generated password:", a.lastGenerated)
	return nil
}

// Save stores the last generated secret under the given application name,
// prompting for the name when args are empty.
func (a *App) Save(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		a.println("Please login first.")
		return errNotLoggedIn
	}

	appName := strings.TrimSpace(strings.Join(args, " "))
	if appName == "" {
		var err error
		appName, err = GetSimpleText(a.reader, "Enter application name", a.out)
		if err != nil {
			a.println("Error:", err)
			return err
		}
	}
	if appName == "" {
		a.println("Please enter the application name.")
		return common.ErrInvalidInput
	}
	if a.lastGenerated == "" {
		a.println("Generate a password first.")
		return common.ErrInvalidInput
	}

	if err := a.vaultService.Save(ctx, a.userName, appName, a.lastGenerated); err != nil {
		a.println("Could not save password:", err)
		return err
	}
	a.printf("Password saved for %s!\n", appName)
	return nil
}

// List prints every stored secret of the logged-in user in insertion order.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Please login first.")
		return errNotLoggedIn
	}

	entries, err := a.vaultService.ListByOwner(ctx, a.userName)
	if err != nil {
		a.println("Database error:", err)
		return err
	}
	if len(entries) == 0 {
		a.println("No passwords stored yet for this user.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "APPLICATION\tPASSWORD")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.AppName, e.Password)
	}
	return tw.Flush()
}
