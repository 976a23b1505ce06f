package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/services"
)

type entityFlags struct {
	entityType  string
	categories  []string
	description string
	phone       string
	email       string
	website     string
	address     string
}

func (f *entityFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.entityType, "type", "t", "", "Entity type (business, professional, ...)")
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "Category (repeatable)")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.website, "website", "", "Website")
	cmd.Flags().StringVar(&f.address, "address", "", "Address")
}

func newEntitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Manage shared organizations and professionals",
	}

	cmd.AddCommand(
		newEntitiesAddCmd(),
		newEntitiesListCmd(),
		newEntitiesShowCmd(),
		newEntitiesUpdateCmd(),
		newEntitiesDeleteCmd(),
	)
	return cmd
}

func newEntitiesAddCmd() *cobra.Command {
	var flags entityFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a global entity",
		Long: `Adds an organization or professional shared by all users.

Examples:
  rolodex entities add "Acme Dental" --type business -c dentist -c health
  rolodex entities add "Dr. Rivera" --type professional -c dentist`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				entity, err := d.EntityHandler.HandleCreate(cmd.Context(), services.CreateGlobalEntityInput{
					Name:        args[0],
					Type:        flags.entityType,
					Categories:  flags.categories,
					Description: flags.description,
					Phone:       flags.phone,
					Email:       flags.email,
					Website:     flags.website,
					Address:     flags.address,
				})
				if err != nil {
					return fmt.Errorf("creating entity: %w", err)
				}
				fmt.Printf("Created entity: %s\n", entity.ID)
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newEntitiesListCmd() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List global entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				result, err := d.EntityHandler.HandleList(cmd.Context(), category)
				if err != nil {
					return fmt.Errorf("listing entities: %w", err)
				}

				if asJSON {
					return printJSON(result)
				}
				if result.Total == 0 {
					fmt.Println("No entities found.")
					return nil
				}

				fmt.Printf("Entities (%d total):\n\n", result.Total)
				for i := range result.Entities {
					displayEntity(&result.Entities[i])
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newEntitiesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entity-id>",
		Short: "Show an entity and the contacts holding roles there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				view, err := d.EntityHandler.HandleShow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(view)
			})
		},
	}
}

func newEntitiesUpdateCmd() *cobra.Command {
	var (
		flags entityFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "update <entity-id>",
		Short: "Update a global entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			patch := entities.GlobalEntityPatch{
				Name:        stringFlag(changed("name"), name),
				Type:        stringFlag(changed("type"), flags.entityType),
				Description: stringFlag(changed("description"), flags.description),
				Phone:       stringFlag(changed("phone"), flags.phone),
				Email:       stringFlag(changed("email"), flags.email),
				Website:     stringFlag(changed("website"), flags.website),
				Address:     stringFlag(changed("address"), flags.address),
			}
			if changed("category") {
				patch.Categories = &flags.categories
			}

			return withDeps(func(d *Deps) error {
				entity, err := d.EntityHandler.HandleUpdate(cmd.Context(), args[0], patch)
				if err != nil {
					return fmt.Errorf("updating entity: %w", err)
				}
				displayEntity(entity)
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "New name")
	return cmd
}

func newEntitiesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entity-id>",
		Short: "Delete a global entity",
		Long:  "Deletes an entity together with the relationships, interactions and roles that point at it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				result, err := d.EntityHandler.HandleDelete(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("deleting entity: %w", err)
				}
				fmt.Printf("Deleted entity: %s (%d relationships, %d interactions, %d roles)\n",
					args[0], result.Relationships, result.Interactions, result.Roles)
				return nil
			})
		},
	}
}
