package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

// summaryColumns joins the contact (c) and global entity (e) side of a target.
const summaryColumns = `c.name, c.type, c.phone, c.email, e.name, e.type, e.phone, e.email`

// summaryDest collects the nullable joined columns of summaryColumns.
type summaryDest struct {
	contactName, contactType, contactPhone, contactEmail sql.NullString
	entityName, entityType, entityPhone, entityEmail     sql.NullString
}

func (d *summaryDest) targets() []any {
	return []any{
		&d.contactName, &d.contactType, &d.contactPhone, &d.contactEmail,
		&d.entityName, &d.entityType, &d.entityPhone, &d.entityEmail,
	}
}

func (d *summaryDest) summary(target entities.Target) entities.TargetSummary {
	s := entities.TargetSummary{Kind: target.Kind(), ID: target.ID()}
	if target.IsContact() {
		s.Name, s.Type = d.contactName.String, d.contactType.String
		s.Phone, s.Email = d.contactPhone.String, d.contactEmail.String
		return s
	}
	s.Name, s.Type = d.entityName.String, d.entityType.String
	s.Phone, s.Email = d.entityPhone.String, d.entityEmail.String
	return s
}

// ListContactDetails lists a user's contacts, each with the edges pointing
// at it that the user may see.
func (q *queries) ListContactDetails(ctx context.Context, userID string) ([]entities.ContactDetail, error) {
	contacts, err := q.ListContactsByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + relationshipColumnsR + `
		FROM relationships r
		JOIN contacts c ON c.id = r.contact_id
		WHERE c.added_by_id = ? AND (r.user_id = ? OR r.visibility = ?)
		ORDER BY r.created_at ASC, r.id ASC
	`
	inbound, err := q.queryRelationships(ctx, query, userID, userID, string(entities.VisibilityPublic))
	if err != nil {
		return nil, err
	}

	byContact := make(map[string][]entities.Relationship, len(contacts))
	for _, rel := range inbound {
		id := rel.Target.ContactID()
		byContact[id] = append(byContact[id], rel)
	}

	details := make([]entities.ContactDetail, 0, len(contacts))
	for _, contact := range contacts {
		rels := byContact[contact.ID]
		if rels == nil {
			rels = []entities.Relationship{}
		}
		details = append(details, entities.ContactDetail{Contact: contact, Relationships: rels})
	}
	return details, nil
}

// ListRelationshipDetails lists a user's edges joined with target summaries.
func (q *queries) ListRelationshipDetails(ctx context.Context, userID string) ([]entities.RelationshipDetail, error) {
	query := `
		SELECT ` + relationshipColumnsR + `, ` + summaryColumns + `
		FROM relationships r
		LEFT JOIN contacts c ON c.id = r.contact_id
		LEFT JOIN global_entities e ON e.id = r.entity_id
		WHERE r.user_id = ?
		ORDER BY r.created_at ASC, r.id ASC
	`
	rows, err := q.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying relationship details: %w", err)
	}
	defer rows.Close()

	details := make([]entities.RelationshipDetail, 0, 16)
	for rows.Next() {
		var joined summaryDest
		rel, err := scanRelationship(rows, joined.targets()...)
		if err != nil {
			return nil, err
		}
		details = append(details, entities.RelationshipDetail{
			Relationship: *rel,
			Summary:      joined.summary(rel.Target),
		})
	}
	return details, rows.Err()
}

// ListEntityDetails lists all global entities, each with the edges pointing
// at it that viewerID may see.
func (q *queries) ListEntityDetails(ctx context.Context, viewerID string) ([]entities.EntityDetail, error) {
	all, err := q.ListGlobalEntities(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE entity_id IS NOT NULL AND (user_id = ? OR visibility = ?)
		ORDER BY created_at ASC, id ASC
	`
	inbound, err := q.queryRelationships(ctx, query, viewerID, string(entities.VisibilityPublic))
	if err != nil {
		return nil, err
	}

	byEntity := make(map[string][]entities.Relationship, len(all))
	for _, rel := range inbound {
		id := rel.Target.EntityID()
		byEntity[id] = append(byEntity[id], rel)
	}

	details := make([]entities.EntityDetail, 0, len(all))
	for _, entity := range all {
		rels := byEntity[entity.ID]
		if rels == nil {
			rels = []entities.Relationship{}
		}
		details = append(details, entities.EntityDetail{GlobalEntity: entity, Relationships: rels})
	}
	return details, nil
}

// ListInteractionDetails lists a user's interactions, most recent first,
// joined with target summaries.
func (q *queries) ListInteractionDetails(ctx context.Context, userID string) ([]entities.InteractionDetail, error) {
	query := `
		SELECT ` + interactionColumnsI + `, ` + summaryColumns + `
		FROM interactions i
		LEFT JOIN contacts c ON c.id = i.contact_id
		LEFT JOIN global_entities e ON e.id = i.entity_id
		WHERE i.user_id = ?
		ORDER BY i.timestamp DESC, i.id ASC
	`
	rows, err := q.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying interaction details: %w", err)
	}
	defer rows.Close()

	details := make([]entities.InteractionDetail, 0, 16)
	for rows.Next() {
		var joined summaryDest
		interaction, err := scanInteraction(rows, joined.targets()...)
		if err != nil {
			return nil, err
		}
		details = append(details, entities.InteractionDetail{
			Interaction: *interaction,
			Summary:     joined.summary(interaction.Target),
		})
	}
	return details, rows.Err()
}
