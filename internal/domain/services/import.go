package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
	"github.com/ersonp/rolodex/internal/domain/ports"
	"github.com/ersonp/rolodex/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate without saving
}

// ImportError represents an error for a specific contact during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService bulk-loads contacts for a user.
type ImportService struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewImportService creates a new import service.
func NewImportService(store ports.GraphStore, logger *zap.Logger) *ImportService {
	return &ImportService{
		store:  store,
		logger: loggerOrNop(logger),
	}
}

// Import validates raw contacts and saves the valid ones for userID. A
// contact whose normalized name and phone match one the user already has,
// or one earlier in the same batch, is skipped. All saves share one
// transaction.
func (s *ImportService) Import(ctx context.Context, userID string, raws []parsers.RawContact, opts ImportOptions) (*ImportResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.InvalidArgument("user id is required")
	}

	result := &ImportResult{}
	valid, validationErrors := validateContacts(raws)
	result.Errors = validationErrors

	err := s.store.WithTx(ctx, func(tx ports.GraphTx) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if len(valid) == 0 {
			return nil
		}

		existing, err := tx.ListContactsByCreator(ctx, userID)
		if err != nil {
			return fmt.Errorf("listing existing contacts: %w", err)
		}
		seen := make(map[string]struct{}, len(existing)+len(valid))
		for i := range existing {
			seen[contactKey(existing[i].Name, existing[i].Phone)] = struct{}{}
		}

		for i := range valid {
			key := contactKey(valid[i].Name, valid[i].Phone)
			if _, ok := seen[key]; ok {
				result.Skipped++
				continue
			}
			seen[key] = struct{}{}

			if !opts.DryRun {
				contact := toContact(userID, &valid[i])
				if err := tx.SaveContact(ctx, contact); err != nil {
					return fmt.Errorf("line %d: saving contact: %w", valid[i].LineNum, err)
				}
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("contacts imported",
		zap.String("user_id", userID),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func validateContacts(raws []parsers.RawContact) ([]parsers.RawContact, []ImportError) {
	valid := make([]parsers.RawContact, 0, len(raws))
	var errors []ImportError

	for i := range raws {
		raw := raws[i]
		if raw.LineNum == 0 {
			raw.LineNum = i + 1
		}
		if err := validateRawContact(&raw); err != nil {
			errors = append(errors, *err)
			continue
		}
		valid = append(valid, raw)
	}

	return valid, errors
}

// validateRawContact checks raw and canonicalizes its type in place.
func validateRawContact(raw *parsers.RawContact) *ImportError {
	if strings.TrimSpace(raw.Name) == "" {
		return &ImportError{Line: raw.LineNum, Field: "name", Message: "missing required field: name"}
	}
	if strings.TrimSpace(raw.Type) == "" {
		return &ImportError{Line: raw.LineNum, Field: "type", Message: "missing required field: type"}
	}
	contactType, err := entities.ParseContactType(raw.Type)
	if err != nil {
		return &ImportError{
			Line:    raw.LineNum,
			Field:   "type",
			Value:   raw.Type,
			Message: fmt.Sprintf("invalid type %q (valid: PERSON, BUSINESS)", raw.Type),
		}
	}
	raw.Type = string(contactType)

	if email := strings.TrimSpace(raw.Email); email != "" && !strings.Contains(email, "@") {
		return &ImportError{
			Line:    raw.LineNum,
			Field:   "email",
			Value:   raw.Email,
			Message: fmt.Sprintf("invalid email %q", raw.Email),
		}
	}
	return nil
}

func toContact(userID string, raw *parsers.RawContact) *entities.Contact {
	contact := entities.NewContact(newID(), userID, raw.Name, entities.ContactType(raw.Type), timeNow())
	contact.Phone = strings.TrimSpace(raw.Phone)
	contact.Email = strings.TrimSpace(raw.Email)
	contact.Location = strings.TrimSpace(raw.Location)
	contact.Tags = entities.NormalizeTags(raw.Tags)
	return &contact
}

func contactKey(name, phone string) string {
	return entities.NormalizeName(name) + "|" + strings.TrimSpace(phone)
}
