package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/infrastructure/parsers"
)

type exportFlags struct {
	format string
	output string
	tag    string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export contacts to file",
		Long: `Exports your contacts to JSON, CSV, or markdown format.

CSV output uses the same columns the importer reads, so an export can be
imported again for another user.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "Only export contacts with this tag")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	userID, err := requireUser()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		snapshot, err := d.Fetcher.Fetch(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("reading contacts: %w", err)
		}

		contacts := filterByTag(snapshot.Contacts, flags.tag)
		if len(contacts) == 0 {
			return fmt.Errorf("no contacts found to export")
		}

		return exportContacts(contacts, flags.format, flags.output)
	})
}

func filterByTag(contacts []entities.ContactDetail, tag string) []entities.ContactDetail {
	if tag == "" {
		return contacts
	}
	filtered := make([]entities.ContactDetail, 0, len(contacts))
	for _, c := range contacts {
		if slices.ContainsFunc(c.Tags, func(t string) bool { return strings.EqualFold(t, tag) }) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func exportContacts(contacts []entities.ContactDetail, format, output string) (err error) {
	var (
		w io.Writer = os.Stdout
		f *os.File
	)

	if output != "" {
		f, err = os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatContacts(w, contacts, format); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if output != "" {
		fmt.Printf("Exported %d contacts to %s\n", len(contacts), output)
	}

	return nil
}

func formatContacts(w io.Writer, contacts []entities.ContactDetail, format string) error {
	switch format {
	case "json":
		return formatJSON(w, contacts)
	case "csv":
		return formatCSV(w, contacts)
	case "markdown":
		return formatMarkdown(w, contacts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatJSON(w io.Writer, contacts []entities.ContactDetail) error {
	type exportContact struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Type      string   `json:"type"`
		Phone     string   `json:"phone,omitempty"`
		Email     string   `json:"email,omitempty"`
		Location  string   `json:"location,omitempty"`
		Tags      []string `json:"tags"`
		Relations []string `json:"relations"`
	}

	out := make([]exportContact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, exportContact{
			ID:        c.ID,
			Name:      c.Name,
			Type:      string(c.Type),
			Phone:     c.Phone,
			Email:     c.Email,
			Location:  c.Location,
			Tags:      nonNil(c.Tags),
			Relations: relationsOf(c),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func formatCSV(w io.Writer, contacts []entities.ContactDetail) error {
	writer := csv.NewWriter(w)

	header := []string{"name", "type", "phone", "email", "location", "tags", "relations"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, c := range contacts {
		row := []string{
			c.Name,
			string(c.Type),
			c.Phone,
			c.Email,
			c.Location,
			strings.Join(c.Tags, parsers.TagSeparator),
			strings.Join(relationsOf(c), parsers.TagSeparator),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, contacts []entities.ContactDetail) error {
	if _, err := fmt.Fprintf(w, "# Contacts\n\nTotal: %d contacts\n\n", len(contacts)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Name | Type | Phone | Tags | Relations |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|------|-------|------|-----------|\n"); err != nil {
		return err
	}

	for _, c := range contacts {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			escapeMarkdown(c.Name),
			c.Type,
			escapeMarkdown(c.Phone),
			escapeMarkdown(strings.Join(c.Tags, ", ")),
			strings.Join(relationsOf(c), ", "),
		); err != nil {
			return err
		}
	}

	return nil
}

// relationsOf lists the distinct relation kinds pointing at c, sorted.
func relationsOf(c entities.ContactDetail) []string {
	relations := make([]string, 0, len(c.Relationships))
	for _, r := range c.Relationships {
		if !slices.Contains(relations, string(r.Relation)) {
			relations = append(relations, string(r.Relation))
		}
	}
	slices.Sort(relations)
	return relations
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
