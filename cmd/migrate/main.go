package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"game-reports/configs"
	"game-reports/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the reporting star schema",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrate(func(m *migrate.Migrate) error {
					return ignoreNoChange(cmd, m.Up())
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrate(func(m *migrate.Migrate) error {
					return ignoreNoChange(cmd, m.Down())
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrate(func(m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						cmd.Println("no migrations applied")
						return nil
					}
					if err != nil {
						return err
					}
					cmd.Printf("version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
	)
	return root
}

func withMigrate(fn func(*migrate.Migrate) error) error {
	conf, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if conf.DbConfig.Dialect != "postgres" && conf.DbConfig.Dialect != "postgresql" {
		return fmt.Errorf("migrations support postgres only, got %q", conf.DbConfig.Dialect)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, conf.DbConfig.MigrateURL())
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	return fn(m)
}

func ignoreNoChange(cmd *cobra.Command, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		cmd.Println("no migrations to apply")
		return nil
	}
	if err == nil {
		cmd.Println("migrations completed successfully")
	}
	return err
}
