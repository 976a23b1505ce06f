package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/application/handlers"
)

func newRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Track where contacts work",
	}

	cmd.AddCommand(
		newRolesAddCmd(),
		newRolesListCmd(),
		newRolesEndCmd(),
		newRolesDeleteCmd(),
	)
	return cmd
}

func newRolesAddCmd() *cobra.Command {
	var req handlers.CreateRoleRequest

	cmd := &cobra.Command{
		Use:   "add <contact-id> <entity-id> <role>",
		Short: "Record a contact's role at an entity",
		Long: `Records that a contact holds a role at a global entity.

Dates use YYYY-MM-DD. A role without an end date is current.

Examples:
  rolodex roles add c-123 e-456 hygienist --start 2024-01-15
  rolodex roles add c-123 e-789 dentist --location "Main St office"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ContactID = args[0]
			req.EntityID = args[1]
			req.Role = args[2]

			return withDeps(func(d *Deps) error {
				role, err := d.RoleHandler.HandleCreate(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("creating role: %w", err)
				}
				fmt.Printf("Created role: %s\n", role.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.Location, "location", "", "Where the role is held")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "Start date (default today)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "End date")
	return cmd
}

func newRolesListCmd() *cobra.Command {
	var (
		contactID string
		entityID  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roles of a contact or at an entity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				roles, err := d.RoleHandler.HandleList(cmd.Context(), contactID, entityID)
				if err != nil {
					return fmt.Errorf("listing roles: %w", err)
				}
				if len(roles) == 0 {
					fmt.Println("No roles found.")
					return nil
				}
				for i := range roles {
					displayRole(&roles[i])
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&contactID, "contact", "", "Contact id")
	cmd.Flags().StringVar(&entityID, "entity", "", "Global entity id")
	return cmd
}

func newRolesEndCmd() *cobra.Command {
	var endDate string

	cmd := &cobra.Command{
		Use:   "end <role-id>",
		Short: "Set or clear the end date of a role",
		Long:  "Sets the end date of a role. Passing --date \"\" reopens it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				role, err := d.RoleHandler.HandleEnd(cmd.Context(), args[0], endDate)
				if err != nil {
					return fmt.Errorf("ending role: %w", err)
				}
				displayRole(role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&endDate, "date", "", "End date (YYYY-MM-DD)")
	return cmd
}

func newRolesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <role-id>",
		Short: "Delete a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.RoleHandler.HandleDelete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("deleting role: %w", err)
				}
				fmt.Printf("Deleted role: %s\n", args[0])
				return nil
			})
		},
	}
}
