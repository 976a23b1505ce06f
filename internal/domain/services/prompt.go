package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

// MaxBriefRecords caps each collection rendered into a brief.
const MaxBriefRecords = 10

// PromptAssembler renders a context snapshot and a query into a brief for
// the answering collaborator. It does no I/O and holds no state.
type PromptAssembler struct{}

// NewPromptAssembler creates a new PromptAssembler.
func NewPromptAssembler() *PromptAssembler {
	return &PromptAssembler{}
}

// Build trims and projects the snapshot and renders the brief text. The same
// inputs always produce the same output.
func (p *PromptAssembler) Build(query string, snapshot *entities.ContextSnapshot) entities.ContextBrief {
	if snapshot == nil {
		snapshot = entities.NewContextSnapshot("")
	}

	brief := entities.ContextBrief{
		Query:         query,
		Contacts:      projectContacts(snapshot.Contacts),
		Entities:      projectEntities(snapshot.Entities),
		Relationships: projectRelationships(snapshot.Relationships),
		Interactions:  projectInteractions(snapshot.Interactions),
		Totals: entities.Totals{
			Contacts:      len(snapshot.Contacts),
			Entities:      len(snapshot.Entities),
			Relationships: len(snapshot.Relationships),
			Interactions:  len(snapshot.Interactions),
		},
	}
	brief.Categories = distinctCategories(brief.Entities)
	brief.Text = renderBrief(&brief)
	return brief
}

func projectContacts(details []entities.ContactDetail) []entities.ContactRecord {
	n := min(len(details), MaxBriefRecords)
	out := make([]entities.ContactRecord, 0, n)
	for i := range n {
		c := &details[i]
		out = append(out, entities.ContactRecord{
			ID:    c.ID,
			Name:  c.Name,
			Phone: c.Phone,
			Email: c.Email,
			Type:  c.Type,
		})
	}
	return out
}

func projectEntities(details []entities.EntityDetail) []entities.EntityRecord {
	n := min(len(details), MaxBriefRecords)
	out := make([]entities.EntityRecord, 0, n)
	for i := range n {
		e := &details[i]
		var categories []string
		if len(e.Categories) > 0 {
			categories = append([]string(nil), e.Categories...)
		}
		out = append(out, entities.EntityRecord{
			ID:         e.ID,
			Name:       e.Name,
			Type:       e.Type,
			Categories: categories,
			Phone:      e.Phone,
			Email:      e.Email,
		})
	}
	return out
}

func projectRelationships(details []entities.RelationshipDetail) []entities.RelationshipRecord {
	n := min(len(details), MaxBriefRecords)
	out := make([]entities.RelationshipRecord, 0, n)
	for i := range n {
		r := &details[i]
		out = append(out, entities.RelationshipRecord{
			Type:     r.Target.Kind(),
			Relation: r.Relation,
			Context:  r.Context,
		})
	}
	return out
}

func projectInteractions(details []entities.InteractionDetail) []entities.InteractionRecord {
	n := min(len(details), MaxBriefRecords)
	out := make([]entities.InteractionRecord, 0, n)
	for i := range n {
		in := &details[i]
		record := entities.InteractionRecord{
			Type:  in.Type,
			Notes: in.Notes,
		}
		if !in.Timestamp.IsZero() {
			ts := in.Timestamp.UTC()
			record.Timestamp = &ts
		}
		out = append(out, record)
	}
	return out
}

func distinctCategories(records []entities.EntityRecord) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for i := range records {
		for _, c := range records[i].Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func renderBrief(b *entities.ContextBrief) string {
	var sb strings.Builder

	sb.WriteString("You are a smart phonebook assistant. Your job is to help users find contacts and information from their personal phonebook.\n\n")
	fmt.Fprintf(&sb, "USER QUERY: \"%s\"\n\n", b.Query)

	sb.WriteString("USER'S DATABASE CONTEXT:\n")
	writeSection(&sb, "CONTACTS", len(b.Contacts), b.Totals.Contacts, b.Contacts)
	writeSection(&sb, "BUSINESSES/PROFESSIONALS", len(b.Entities), b.Totals.Entities, b.Entities)
	writeSection(&sb, "RELATIONSHIPS", len(b.Relationships), b.Totals.Relationships, b.Relationships)
	writeSection(&sb, "PAST INTERACTIONS", len(b.Interactions), b.Totals.Interactions, b.Interactions)

	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString("1. First, analyze if the query matches any data in the provided context\n")
	sb.WriteString("2. If no exact matches are found, check for related categories or types\n")
	sb.WriteString("3. If still no matches, provide a helpful response about what is available\n")
	sb.WriteString("4. For service requests (like carpenters), suggest the closest matching services\n")
	sb.WriteString("5. Always be specific about what you found in the database\n\n")

	categories := "none"
	if len(b.Categories) > 0 {
		categories = strings.Join(b.Categories, ", ")
	}
	sb.WriteString("CURRENT DATABASE CONTENT:\n")
	fmt.Fprintf(&sb, "- You have %d businesses/professionals in your contacts\n", b.Totals.Entities)
	fmt.Fprintf(&sb, "- Main categories available: %s\n", categories)
	fmt.Fprintf(&sb, "- Total contacts: %d\n\n", b.Totals.Contacts)

	sb.WriteString("RESPONSE FORMAT:\n")
	sb.WriteString("- If matches found:\n")
	sb.WriteString("  \"I found [X] matching [service/contact type] in your phonebook:\"\n")
	sb.WriteString("  Then list each with relevant details\n\n")
	sb.WriteString("- If no exact matches:\n")
	sb.WriteString("  \"I couldn't find exact matches for '[query]' in your phonebook.\n")
	sb.WriteString("   However, here are similar services/contacts you have:\"\n")
	sb.WriteString("   Then list related items\n\n")
	sb.WriteString("- If nothing relevant:\n")
	sb.WriteString("  \"I couldn't find any related contacts or services for '[query]'.\n")
	sb.WriteString("   Your phonebook currently has [summary of available data].\"\n\n")

	sb.WriteString("IMPORTANT: Always be specific about what you found in the database. Never make up information.\n")
	return sb.String()
}

func writeSection(sb *strings.Builder, label string, shown, total int, records any) {
	fmt.Fprintf(sb, "- %s (showing %d of %d):\n", label, shown, total)
	sb.WriteString(renderJSON(records))
	sb.WriteString("\n\n")
}

// renderJSON indents records as JSON. The projections only hold plain
// values, so marshalling cannot fail in practice.
func renderJSON(records any) string {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}
