package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/services"
	"github.com/ersonp/rolodex/internal/infrastructure/parsers"
)

const contactsCSV = `name,type,phone,email,location,tags
Carla Carpenter,PERSON,555-0102,,Porto,carpenter;wood
Bob Plumber,PERSON,555-0101,,,
,PERSON,555-0103,,,
Oak & Pine,BUSINESS,,hi@oak.test,,
`

func TestImportHandler_Handle_CSVFile(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewImportHandler(services.NewImportService(store, nil))

	path := filepath.Join(t.TempDir(), "contacts.csv")
	require.NoError(t, os.WriteFile(path, []byte(contactsCSV), 0o644))

	result, err := handler.Handle(ctx, "user-1", path, ImportOptions{Format: "auto"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].Line)
	assert.Equal(t, "name", result.Errors[0].Field)

	contacts, err := store.ListContactsByCreator(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, contacts, 3)
}

func TestImportHandler_HandleReader_DryRunJSON(t *testing.T) {
	ctx := context.Background()
	store := seedGraph(t)
	handler := NewImportHandler(services.NewImportService(store, nil))

	input := `[{"name": "Dana Dentist", "type": "person", "tags": ["dentist"]}]`
	result, err := handler.HandleReader(ctx, "user-1", strings.NewReader(input), parsers.ForFormat("json"), true)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	contacts, err := store.ListContactsByCreator(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestImportHandler_Handle_Errors(t *testing.T) {
	handler := NewImportHandler(services.NewImportService(seedGraph(t), nil))
	dir := t.TempDir()

	_, err := handler.Handle(context.Background(), "user-1", filepath.Join(dir, "contacts.xml"), ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, err = handler.Handle(context.Background(), "user-1", filepath.Join(dir, "missing.csv"), ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file")

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o644))
	result, err := handler.Handle(context.Background(), "user-1", empty, ImportOptions{Format: "json"})
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
}
