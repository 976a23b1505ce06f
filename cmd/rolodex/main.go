// Package main provides the entry point for the rolodex CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalUser    string
	globalVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rolodex",
		Short:         "A personal relationship graph you can ask questions about",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalUser, "user", "u", os.Getenv("ROLODEX_USER"), "User id to operate as (or set ROLODEX_USER)")
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newUsersCmd(),
		newContactsCmd(),
		newEntitiesCmd(),
		newRelateCmd(),
		newRelationsCmd(),
		newRolesCmd(),
		newInteractionsCmd(),
		newAskCmd(),
		newImportCmd(),
		newExportCmd(),
		newAuditCmd(),
	)

	return rootCmd
}
