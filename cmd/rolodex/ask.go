package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/application/handlers"
)

func newAskCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your network",
		Long: `Answers a natural-language question from your contacts, entities,
relationships and interactions.

Examples:
  rolodex ask "Who did I hire to fix my plumbing?"
  rolodex ask "Which dentists do my friends use?" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the response envelope as JSON")

	return cmd
}

func runAsk(cmd *cobra.Command, question string, asJSON bool) error {
	userID, err := requireUser()
	if err != nil {
		return err
	}

	return withQueryHandler(func(h *handlers.QueryHandler) error {
		resp := h.Handle(cmd.Context(), handlers.QueryRequest{
			Query:  question,
			UserID: userID,
		})

		if asJSON {
			return printJSON(resp)
		}
		if !resp.Success {
			if resp.Cause != "" {
				return fmt.Errorf("%s (%s): %w", resp.Error, resp.Cause, resp.Err())
			}
			return fmt.Errorf("%s: %w", resp.Error, resp.Err())
		}

		fmt.Println(resp.Answer)
		return nil
	})
}
