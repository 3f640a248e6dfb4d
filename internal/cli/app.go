package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/sqrity/sqrity/internal/generator"
	"github.com/sqrity/sqrity/internal/logging"
	"github.com/sqrity/sqrity/internal/services"
)

// App is the state of one shell session: who is logged in and the last
// generated secret. Nothing of it outlives the process.
type App struct {
	authService   services.AuthService
	vaultService  services.VaultService
	generator     *generator.Generator
	defaultLength int
	log           logging.Logger

	userName      string
	lastGenerated string

	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// Options configures NewApp. Zero values pick sensible defaults.
type Options struct {
	Generator     *generator.Generator
	DefaultLength int
	In            io.Reader
	Out           io.Writer
}

func NewApp(as services.AuthService, vs services.VaultService, log logging.Logger, opts Options) *App {
	gen := opts.Generator
	if gen == nil {
		gen = generator.New()
	}
	return &App{
		authService:   as,
		vaultService:  vs,
		generator:     gen,
		defaultLength: opts.DefaultLength,
		log:           log,
		in:            opts.In,
		reader:        bufio.NewReader(opts.In),
		out:           opts.Out,
	}
}

// Run prints the banner and blocks in the command loop.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to SQRITY password manager (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
