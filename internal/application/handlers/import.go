package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ersonp/rolodex/internal/domain/services"
	"github.com/ersonp/rolodex/internal/infrastructure/parsers"
)

// ImportHandler handles importing contacts from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
	DryRun bool   // Validate without saving
}

// Handle imports contacts for userID from a file.
func (h *ImportHandler) Handle(ctx context.Context, userID, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return h.HandleReader(ctx, userID, file, parser, opts.DryRun)
}

// HandleReader imports contacts for userID from r using parser.
func (h *ImportHandler) HandleReader(ctx context.Context, userID string, r io.Reader, parser parsers.Parser, dryRun bool) (*services.ImportResult, error) {
	raws, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(raws) == 0 {
		return &services.ImportResult{}, nil
	}

	return h.service.Import(ctx, userID, raws, services.ImportOptions{DryRun: dryRun})
}
