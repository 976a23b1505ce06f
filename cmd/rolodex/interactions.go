package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/application/handlers"
	"github.com/ersonp/rolodex/internal/domain/entities"
)

func newInteractionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactions",
		Short: "Log and review contact with people and businesses",
	}

	cmd.AddCommand(
		newInteractionsLogCmd(),
		newInteractionsListCmd(),
		newInteractionsDeleteCmd(),
	)
	return cmd
}

func newInteractionsLogCmd() *cobra.Command {
	var (
		req      handlers.LogInteractionRequest
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "log <type>",
		Short: "Log an interaction",
		Long: `Logs a call, email, message or hire with one contact or global entity.

Valid types: CALL, EMAIL, MESSAGE, HIRE

Examples:
  rolodex interactions log HIRE --contact c-123 --title "Kitchen sink" --at 2025-06-01
  rolodex interactions log CALL --entity e-456 --duration 5m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := requireUser()
			if err != nil {
				return err
			}
			req.UserID = userID
			req.Type = args[0]
			if cmd.Flags().Changed("duration") {
				seconds := int(duration.Seconds())
				req.DurationSeconds = &seconds
			}

			return withDeps(func(d *Deps) error {
				interaction, err := d.InteractionHandler.HandleLog(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("logging interaction: %w", err)
				}
				fmt.Printf("Logged interaction: %s\n", interaction.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&req.ContactID, "contact", "", "Contact id")
	cmd.Flags().StringVar(&req.EntityID, "entity", "", "Global entity id")
	cmd.Flags().StringVar(&req.RelationshipID, "relationship", "", "Relationship this interaction belongs to")
	cmd.Flags().StringVar(&req.Title, "title", "", "Short title")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&req.At, "at", "", "When it happened (YYYY-MM-DD or RFC3339, default now)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "How long it took")
	return cmd
}

func newInteractionsListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your interactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := requireUser()
			if err != nil {
				return err
			}

			return withDeps(func(d *Deps) error {
				interactions, err := d.InteractionHandler.HandleList(cmd.Context(), userID)
				if err != nil {
					return fmt.Errorf("listing interactions: %w", err)
				}

				if asJSON {
					return printJSON(interactions)
				}
				if len(interactions) == 0 {
					fmt.Println("No interactions found.")
					return nil
				}
				for i := range interactions {
					displayInteraction(&interactions[i])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newInteractionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <interaction-id>",
		Short: "Delete an interaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				if err := d.InteractionHandler.HandleDelete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("deleting interaction: %w", err)
				}
				fmt.Printf("Deleted interaction: %s\n", args[0])
				return nil
			})
		},
	}
}

func displayInteraction(i *entities.Interaction) {
	fmt.Printf("%s  %s  %s with %s\n", i.ID, i.Timestamp.Format("2006-01-02"), i.Type, i.Target)
	if i.Title != "" {
		fmt.Printf("    %s\n", i.Title)
	}
	if i.DurationSeconds != nil {
		fmt.Printf("    Duration: %s\n", time.Duration(*i.DurationSeconds)*time.Second)
	}
}
