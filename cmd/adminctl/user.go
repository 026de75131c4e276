package main

import (
	"database/sql"
	"fmt"
	"os"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/socialboard/socialboard/internal/server/auth"
	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
)

var (
	userEmail string
	userName  string
	userRole  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage dashboard users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user, prompting for the password",
	RunE:  runUserCreate,
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "user email (required)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "full name")
	userCreateCmd.Flags().StringVar(&userRole, "role", models.RoleCreator, "role: admin, marketer, intern or creator")
	_ = userCreateCmd.MarkFlagRequired("email")
	userCmd.AddCommand(userCreateCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	if dsn == "" {
		return fmt.Errorf("--dsn or DATABASE_DSN is required")
	}
	if !models.ValidRole(userRole) {
		return fmt.Errorf("unknown role %q", userRole)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("empty password")
	}

	hash, err := auth.HashPassword(string(password))
	if err != nil {
		return err
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

	user := &models.User{Email: userEmail, FullName: userName, PasswordHash: hash, Role: userRole}
	created, err := rm.Users(db).Create(cmd.Context(), user)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("created user %s (%s)\n", created.ID, created.Email)
	return nil
}
