package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/application/handlers"
)

type contactFlags struct {
	contactType string
	phone       string
	email       string
	location    string
	tags        []string
}

func (f *contactFlags) register(cmd *cobra.Command, defaultType string) {
	cmd.Flags().StringVarP(&f.contactType, "type", "t", defaultType, "Contact type (PERSON, BUSINESS)")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.location, "location", "", "Location")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
}

func newContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage your contacts",
	}

	cmd.AddCommand(
		newContactsAddCmd(),
		newContactsListCmd(),
		newContactsSearchCmd(),
		newContactsUpdateCmd(),
		newContactsDeleteCmd(),
	)
	return cmd
}

func newContactsAddCmd() *cobra.Command {
	var flags contactFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a contact",
		Long: `Adds a person or business to your contacts.

Examples:
  rolodex contacts add "Bob Plumber" --phone 555-0101 --tag plumber
  rolodex contacts add "Oak & Pine" --type BUSINESS --tag carpenter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := requireUser()
			if err != nil {
				return err
			}

			return withDeps(func(d *Deps) error {
				contact, err := d.ContactHandler.HandleCreate(cmd.Context(), handlers.CreateContactRequest{
					UserID:   userID,
					Name:     args[0],
					Type:     flags.contactType,
					Phone:    flags.phone,
					Email:    flags.email,
					Location: flags.location,
					Tags:     flags.tags,
				})
				if err != nil {
					return fmt.Errorf("creating contact: %w", err)
				}
				fmt.Printf("Created contact: %s\n", contact.ID)
				return nil
			})
		},
	}

	flags.register(cmd, "PERSON")
	return cmd
}

func newContactsListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContactsList(cmd, "", 0, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newContactsSearchCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search your contacts by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContactsList(cmd, args[0], limit, asJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultQueryLimit, "Maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func runContactsList(cmd *cobra.Command, query string, limit int, asJSON bool) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		contacts, err := d.ContactHandler.HandleList(cmd.Context(), userID, query, limit)
		if err != nil {
			return fmt.Errorf("listing contacts: %w", err)
		}

		if asJSON {
			return printJSON(contacts)
		}
		if len(contacts) == 0 {
			fmt.Println("No contacts found.")
			return nil
		}

		fmt.Printf("Contacts (%d):\n\n", len(contacts))
		for i := range contacts {
			displayContact(&contacts[i])
		}
		return nil
	})
}

func newContactsUpdateCmd() *cobra.Command {
	var (
		flags contactFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "update <contact-id>",
		Short: "Update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			req := handlers.UpdateContactRequest{
				Name:     stringFlag(changed("name"), name),
				Type:     stringFlag(changed("type"), flags.contactType),
				Phone:    stringFlag(changed("phone"), flags.phone),
				Email:    stringFlag(changed("email"), flags.email),
				Location: stringFlag(changed("location"), flags.location),
			}
			if changed("tag") {
				req.Tags = &flags.tags
			}

			return withDeps(func(d *Deps) error {
				contact, err := d.ContactHandler.HandleUpdate(cmd.Context(), args[0], req)
				if err != nil {
					return fmt.Errorf("updating contact: %w", err)
				}
				displayContact(contact)
				return nil
			})
		},
	}

	flags.register(cmd, "")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	return cmd
}

func newContactsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <contact-id>",
		Short: "Delete a contact",
		Long:  "Deletes a contact together with the relationships, interactions and roles that point at it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				result, err := d.ContactHandler.HandleDelete(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("deleting contact: %w", err)
				}
				fmt.Printf("Deleted contact: %s (%d relationships, %d interactions, %d roles)\n",
					args[0], result.Relationships, result.Interactions, result.Roles)
				return nil
			})
		},
	}
}
