package mocks

import (
	"context"
	"time"

	"github.com/ersonp/rolodex/internal/domain/entities"
)

// wait sleeps for ReadDelay or until ctx is done.
func (s *GraphStore) wait(ctx context.Context) error {
	if s.ReadDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.ReadDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// visibleTo reports whether viewerID may see rel.
func visibleTo(rel entities.Relationship, viewerID string) bool {
	return rel.UserID == viewerID || rel.Visibility == entities.VisibilityPublic
}

func (tx *memTx) summary(target entities.Target) entities.TargetSummary {
	s := entities.TargetSummary{Kind: target.Kind(), ID: target.ID()}
	if target.IsContact() {
		if c, ok := tx.d.contacts[target.ID()]; ok {
			s.Name, s.Type, s.Phone, s.Email = c.Name, string(c.Type), c.Phone, c.Email
		}
		return s
	}
	if e, ok := tx.d.globals[target.ID()]; ok {
		s.Name, s.Type, s.Phone, s.Email = e.Name, e.Type, e.Phone, e.Email
	}
	return s
}

// ListContactDetails lists a user's contacts with their visible inbound edges.
func (s *GraphStore) ListContactDetails(ctx context.Context, userID string) ([]entities.ContactDetail, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]entities.ContactDetail, 0)
	err := s.locked(func(tx *memTx) error {
		if err := s.fail("ListContactDetails"); err != nil {
			return err
		}
		for _, c := range tx.contactsBy(userID) {
			rels := tx.relationshipsWhere(func(r entities.Relationship) bool {
				return r.Target.ContactID() == c.ID && visibleTo(r, userID)
			})
			out = append(out, entities.ContactDetail{Contact: c, Relationships: rels})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListRelationshipDetails lists a user's edges with target summaries.
func (s *GraphStore) ListRelationshipDetails(ctx context.Context, userID string) ([]entities.RelationshipDetail, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]entities.RelationshipDetail, 0)
	err := s.locked(func(tx *memTx) error {
		if err := s.fail("ListRelationshipDetails"); err != nil {
			return err
		}
		for _, r := range tx.relationshipsWhere(func(r entities.Relationship) bool { return r.UserID == userID }) {
			out = append(out, entities.RelationshipDetail{Relationship: r, Summary: tx.summary(r.Target)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListEntityDetails lists all global entities with the edges visible to viewerID.
func (s *GraphStore) ListEntityDetails(ctx context.Context, viewerID string) ([]entities.EntityDetail, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]entities.EntityDetail, 0)
	err := s.locked(func(tx *memTx) error {
		if err := s.fail("ListEntityDetails"); err != nil {
			return err
		}
		for _, e := range tx.allGlobals() {
			rels := tx.relationshipsWhere(func(r entities.Relationship) bool {
				return r.Target.EntityID() == e.ID && visibleTo(r, viewerID)
			})
			out = append(out, entities.EntityDetail{GlobalEntity: e, Relationships: rels})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListInteractionDetails lists a user's interactions with target summaries.
func (s *GraphStore) ListInteractionDetails(ctx context.Context, userID string) ([]entities.InteractionDetail, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]entities.InteractionDetail, 0)
	err := s.locked(func(tx *memTx) error {
		if err := s.fail("ListInteractionDetails"); err != nil {
			return err
		}
		for _, in := range tx.interactionsOf(userID) {
			out = append(out, entities.InteractionDetail{Interaction: in, Summary: tx.summary(in.Target)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
