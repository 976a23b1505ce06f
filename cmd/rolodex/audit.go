package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "audit <subject-id>",
		Short: "Show the change history of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				entries, err := d.UserHandler.HandleAudit(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("reading audit log: %w", err)
				}

				if asJSON {
					return printJSON(entries)
				}
				if len(entries) == 0 {
					fmt.Println("No audit entries found.")
					return nil
				}

				for _, e := range entries {
					fmt.Printf("%s  %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action)
					for _, k := range slices.Sorted(maps.Keys(e.Details)) {
						fmt.Printf("    %s: %v\n", k, e.Details[k])
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
