package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/application/handlers"
)

type relateFlags struct {
	contactID  string
	entityID   string
	strength   string
	visibility string
	reciprocal bool
	context    string
	notes      string
}

func newRelateCmd() *cobra.Command {
	var flags relateFlags

	cmd := &cobra.Command{
		Use:   "relate <relation>",
		Short: "Link yourself to a contact or entity",
		Long: `Creates a relationship from the current user to exactly one contact or
global entity.

Valid relations: FAMILY, FRIEND, BUSINESS, HIRED
Valid strengths: WEAK, MEDIUM, STRONG
Valid visibility: PRIVATE, PUBLIC

A reciprocal relationship to a contact also stores the mirror edge.

Examples:
  rolodex relate HIRED --contact c-123 --context "fixed the sink"
  rolodex relate FRIEND --contact c-456 --reciprocal --strength STRONG
  rolodex relate BUSINESS --entity e-789 --visibility PUBLIC`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.contactID, "contact", "", "Target contact id")
	cmd.Flags().StringVar(&flags.entityID, "entity", "", "Target global entity id")
	cmd.Flags().StringVar(&flags.strength, "strength", "", "Strength (default WEAK)")
	cmd.Flags().StringVar(&flags.visibility, "visibility", "", "Visibility (default PRIVATE)")
	cmd.Flags().BoolVar(&flags.reciprocal, "reciprocal", false, "Also store the reverse edge for a contact")
	cmd.Flags().StringVar(&flags.context, "context", "", "How you know them")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "Private notes")

	cmd.AddCommand(newRelateUpdateCmd(), newRelateDeleteCmd())

	return cmd
}

func runRelate(cmd *cobra.Command, relation string, flags relateFlags) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		result, err := d.RelationshipHandler.HandleCreate(cmd.Context(), handlers.CreateRelationshipRequest{
			UserID:       userID,
			ContactID:    flags.contactID,
			EntityID:     flags.entityID,
			Relation:     relation,
			Strength:     flags.strength,
			Visibility:   flags.visibility,
			IsReciprocal: flags.reciprocal,
			Context:      flags.context,
			Notes:        flags.notes,
		})
		if err != nil {
			return fmt.Errorf("creating relationship: %w", err)
		}

		fmt.Printf("Created relationship: %s\n", result.Relationship.ID)
		displayRelationship(result.Relationship)
		switch {
		case result.Mirror != nil:
			fmt.Printf("Created reciprocal relationship: %s\n", result.Mirror.ID)
		case result.MirrorSkipped:
			fmt.Println("Reciprocal relationship already exists.")
		}

		return nil
	})
}

func newRelateUpdateCmd() *cobra.Command {
	var (
		relation string
		flags    relateFlags
	)

	cmd := &cobra.Command{
		Use:   "update <relationship-id>",
		Short: "Update a relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			req := handlers.UpdateRelationshipRequest{
				Relation:   stringFlag(changed("relation"), relation),
				Strength:   stringFlag(changed("strength"), flags.strength),
				Visibility: stringFlag(changed("visibility"), flags.visibility),
				Context:    stringFlag(changed("context"), flags.context),
				Notes:      stringFlag(changed("notes"), flags.notes),
			}
			if changed("reciprocal") {
				req.IsReciprocal = &flags.reciprocal
			}

			return withDeps(func(d *Deps) error {
				rel, err := d.RelationshipHandler.HandleUpdate(cmd.Context(), args[0], req)
				if err != nil {
					return fmt.Errorf("updating relationship: %w", err)
				}
				displayRelationship(rel)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&relation, "relation", "", "New relation")
	cmd.Flags().StringVar(&flags.strength, "strength", "", "New strength")
	cmd.Flags().StringVar(&flags.visibility, "visibility", "", "New visibility")
	cmd.Flags().BoolVar(&flags.reciprocal, "reciprocal", false, "Mark as reciprocal")
	cmd.Flags().StringVar(&flags.context, "context", "", "New context")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "New notes")

	return cmd
}

func newRelateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <relationship-id>",
		Short: "Delete a relationship",
		Long:  "Deletes an existing relationship by its ID. A reciprocal mirror is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.RelationshipHandler.HandleDelete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("deleting relationship: %w", err)
				}
				fmt.Printf("Deleted relationship: %s\n", args[0])
				return nil
			})
		},
	}
}
