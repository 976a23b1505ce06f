package handlers

import (
	"context"
	"strings"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/ports"
	"github.com/ersonp/rolodex/internal/domain/services"
)

// UserHandler handles user accounts and their audit trail.
type UserHandler struct {
	service *services.UserService
	store   ports.GraphStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, store ports.GraphStore) *UserHandler {
	return &UserHandler{
		service: service,
		store:   store,
	}
}

// HandleCreate registers a user.
func (h *UserHandler) HandleCreate(ctx context.Context, email, name, phone string) (*entities.User, error) {
	return h.service.Create(ctx, services.CreateUserInput{Email: email, Name: name, Phone: phone})
}

// HandleShow looks a user up by id, or by email when ref contains "@".
func (h *UserHandler) HandleShow(ctx context.Context, ref string) (*entities.User, error) {
	if strings.Contains(ref, "@") {
		return h.service.GetByEmail(ctx, ref)
	}
	return h.service.Get(ctx, ref)
}

// HandleAudit returns the audit entries recorded against subjectID, most
// recent first.
func (h *UserHandler) HandleAudit(ctx context.Context, subjectID string) ([]entities.AuditEntry, error) {
	return h.store.FindAuditLog(ctx, subjectID)
}
