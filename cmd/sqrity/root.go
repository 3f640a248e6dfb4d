package main

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/sqrity/sqrity/internal/cli"
	"github.com/sqrity/sqrity/internal/config"
	"github.com/sqrity/sqrity/internal/filex"
	"github.com/sqrity/sqrity/internal/logging"
	"github.com/sqrity/sqrity/internal/services"
	"github.com/sqrity/sqrity/internal/storage"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath  string
	usersDB     string
	vaultDB     string
	busyTimeout time.Duration
	logLevel    string
}

// newRootCmd builds a fresh command tree. Tests call it to get isolated
// instances.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sqrity",
		Short: "sqrity is a local password manager backed by SQLite.",
		Long: `sqrity registers users with salted PBKDF2 hashes, generates random
secrets and stores them per user in a SQLite vault.

Running without a subcommand opens the interactive shell.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), cfg, log, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to a JSON config file")
	pf.StringVar(&opts.usersDB, "users-db", "", "users database file (default users.db)")
	pf.StringVar(&opts.vaultDB, "vault-db", "", "vault database file (default vault.db)")
	pf.DurationVar(&opts.busyTimeout, "busy-timeout", 0, "how long to wait for a locked database (default 5s)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newInitCmd(opts))

	return cmd
}

// load builds the effective configuration: defaults, then the JSON file,
// then the flags the user actually set. It also creates the run logger.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	cfg.Apply(o.overrides(cmd))

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewTextLogger(cmd.ErrOrStderr(), level).With("run_id", uuid.NewString())

	return cfg, log, nil
}

func (o *rootOptions) overrides(cmd *cobra.Command) config.Overrides {
	var ov config.Overrides
	flags := cmd.Flags()

	if flags.Changed("users-db") {
		ov.UsersDB = &o.usersDB
	}
	if flags.Changed("vault-db") {
		ov.VaultDB = &o.vaultDB
	}
	if flags.Changed("log-level") {
		ov.LogLevel = &o.logLevel
	}
	if flags.Changed("busy-timeout") {
		ov.BusyTimeout = &o.busyTimeout
	}
	return ov
}

func openDatabases(ctx context.Context, cfg *config.Config, log logging.Logger) (*storage.Databases, error) {
	for _, path := range []string{cfg.UsersDB, cfg.VaultDB} {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}
	return storage.InitDatabases(ctx,
		storage.DSN(cfg.UsersDB, cfg.BusyTimeout),
		storage.DSN(cfg.VaultDB, cfg.BusyTimeout),
		log,
	)
}

func runShell(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) error {
	dbs, err := openDatabases(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbs.Close(); err != nil {
			log.Warn(ctx, "failed to close databases", "error", err)
		}
	}()

	app := cli.NewApp(
		services.NewAuthService(dbs.Users, log),
		services.NewVaultService(dbs.Vault, log),
		log,
		cli.Options{DefaultLength: cfg.GeneratorLength, In: in, Out: out},
	)
	app.Run(ctx)
	return nil
}
