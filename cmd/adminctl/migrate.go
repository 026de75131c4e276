package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if dsn == "" {
		return fmt.Errorf("--dsn or DATABASE_DSN is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return err
	}
	if err := rm.RunMigrations(cmd.Context(), db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	fmt.Println("migrations applied")
	return nil
}
