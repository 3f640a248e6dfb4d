package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sqrity/sqrity/internal/migrations"
)

// newInitCmd creates both database files and applies pending migrations.
func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or upgrade the users and vault databases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			dbs, err := openDatabases(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer dbs.Close()

			usersVersion, err := migrations.Version(ctx, dbs.Users, migrations.UsersSchema)
			if err != nil {
				return err
			}
			vaultVersion, err := migrations.Version(ctx, dbs.Vault, migrations.VaultSchema)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "users: %s (schema version %d)\n", cfg.UsersDB, usersVersion)
			fmt.Fprintf(out, "vault: %s (schema version %d)\n", cfg.VaultDB, vaultVersion)
			return nil
		},
	}
}
