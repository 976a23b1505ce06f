package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/application/handlers"
)

type relationsFlags struct {
	relation string
	kind     string
	format   string
}

func newRelationsCmd() *cobra.Command {
	var flags relationsFlags

	cmd := &cobra.Command{
		Use:   "relations",
		Short: "List your relationships",
		Long: `Shows all relationships of the current user, with optional filtering.

Examples:
  rolodex relations
  rolodex relations --relation HIRED
  rolodex relations --kind entity --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelations(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.relation, "relation", "", "Filter by relation")
	cmd.Flags().StringVar(&flags.kind, "kind", "", "Filter by target kind (contact, entity)")
	cmd.Flags().StringVar(&flags.format, "format", "list", "Output format: list, json")

	return cmd
}

func runRelations(cmd *cobra.Command, flags relationsFlags) error {
	if flags.format != "list" && flags.format != "json" {
		return fmt.Errorf("invalid format: %s (valid: list, json)", flags.format)
	}

	userID, err := requireUser()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		result, err := d.RelationshipHandler.HandleList(cmd.Context(), userID, handlers.ListOptions{
			Relation: flags.relation,
			Kind:     flags.kind,
		})
		if err != nil {
			return fmt.Errorf("listing relationships: %w", err)
		}

		if flags.format == "json" {
			return printJSON(result)
		}
		if len(result.Relationships) == 0 {
			fmt.Println("No relationships found.")
			return nil
		}

		fmt.Printf("Relationships (%d):\n\n", len(result.Relationships))
		for i := range result.Relationships {
			displayRelationship(&result.Relationships[i])
		}
		return nil
	})
}
