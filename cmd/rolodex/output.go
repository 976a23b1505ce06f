package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	return writeJSON(os.Stdout, v)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func displayContact(c *entities.Contact) {
	fmt.Printf("%s  %s [%s]\n", c.ID, c.Name, c.Type)
	if c.Phone != "" {
		fmt.Printf("    Phone: %s\n", c.Phone)
	}
	if c.Email != "" {
		fmt.Printf("    Email: %s\n", c.Email)
	}
	if c.Location != "" {
		fmt.Printf("    Location: %s\n", c.Location)
	}
	if len(c.Tags) > 0 {
		fmt.Printf("    Tags: %s\n", strings.Join(c.Tags, ", "))
	}
}

func displayEntity(e *entities.GlobalEntity) {
	fmt.Printf("%s  %s (%s)\n", e.ID, e.Name, e.Type)
	if len(e.Categories) > 0 {
		fmt.Printf("    Categories: %s\n", strings.Join(e.Categories, ", "))
	}
	if e.Phone != "" {
		fmt.Printf("    Phone: %s\n", e.Phone)
	}
	if e.Website != "" {
		fmt.Printf("    Website: %s\n", e.Website)
	}
	if e.Address != "" {
		fmt.Printf("    Address: %s\n", e.Address)
	}
}

func displayRelationship(r *entities.Relationship) {
	fmt.Printf("%s  -[%s]-> %s  (%s, %s)\n", r.ID, r.Relation, r.Target, r.Strength, r.Visibility)
	if r.Context != "" {
		fmt.Printf("    Context: %s\n", r.Context)
	}
	if r.IsReciprocal {
		fmt.Println("    (reciprocal)")
	}
}

func displayRole(r *entities.ContactRole) {
	end := "present"
	if r.EndDate != nil {
		end = r.EndDate.Format("2006-01-02")
	}
	fmt.Printf("%s  %s: %s at %s (%s to %s)\n", r.ID, r.ContactID, r.Role, r.EntityID, r.StartDate.Format("2006-01-02"), end)
}

// stringFlag returns a pointer to value when the flag was set, nil otherwise.
func stringFlag(changed bool, value string) *string {
	if !changed {
		return nil
	}
	return &value
}
