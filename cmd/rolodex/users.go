package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage graph owners",
	}

	cmd.AddCommand(newUsersAddCmd(), newUsersShowCmd())
	return cmd
}

func newUsersAddCmd() *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "add <email> <name>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				user, err := d.UserHandler.HandleCreate(cmd.Context(), args[0], args[1], phone)
				if err != nil {
					return fmt.Errorf("creating user: %w", err)
				}
				fmt.Printf("Created user: %s (%s)\n", user.ID, user.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	return cmd
}

func newUsersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-or-email>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				user, err := d.UserHandler.HandleShow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(user)
			})
		},
	}
}
