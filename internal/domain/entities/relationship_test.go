package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/rolodex/internal/domain/errs"
)

func TestTargetFromIDs(t *testing.T) {
	tests := []struct {
		name      string
		contactID string
		entityID  string
		wantKind  TargetKind
		wantErr   bool
	}{
		{name: "contact only", contactID: "c-1", wantKind: TargetContact},
		{name: "entity only", entityID: "e-1", wantKind: TargetEntity},
		{name: "both is rejected", contactID: "c-1", entityID: "e-1", wantErr: true},
		{name: "neither is rejected", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := TargetFromIDs(tt.contactID, tt.entityID)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
				assert.True(t, target.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, target.Kind())
			// Exactly one side is populated.
			assert.True(t, (target.ContactID() == "") != (target.EntityID() == ""))
		})
	}
}

func TestTarget_JSON(t *testing.T) {
	data, err := json.Marshal(ContactTarget("c-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"contact_id":"c-1"}`, string(data))

	var target Target
	require.NoError(t, json.Unmarshal([]byte(`{"entity_id":"e-9"}`), &target))
	assert.Equal(t, EntityTarget("e-9"), target)

	err = json.Unmarshal([]byte(`{"contact_id":"c-1","entity_id":"e-1"}`), &target)
	require.Error(t, err)
}

func TestNewRelationship_Defaults(t *testing.T) {
	now := time.Now()
	rel := NewRelationship("r-1", "u-1", EntityTarget("e-1"), RelationHired, now)

	assert.Equal(t, StrengthWeak, rel.Strength)
	assert.Equal(t, VisibilityPrivate, rel.Visibility)
	assert.False(t, rel.IsReciprocal)
	assert.Equal(t, now, rel.CreatedAt)
}

func TestNewMirror(t *testing.T) {
	now := time.Now()
	primary := NewRelationship("r-1", "u-1", ContactTarget("c-1"), RelationFriend, now)
	primary.IsReciprocal = true
	primary.Context = "college roommates"
	primary.Metadata = Metadata{"since": float64(2012)}

	mirror := NewMirror(primary, "r-2", now)

	assert.Equal(t, "c-1", mirror.UserID)
	assert.Equal(t, ContactTarget("u-1"), mirror.Target)
	assert.Equal(t, RelationFriend, mirror.Relation)
	assert.False(t, mirror.IsReciprocal)
	assert.Equal(t, "Reciprocal: college roommates", mirror.Context)
	assert.Equal(t, "r-1", mirror.Metadata[MetaReciprocalOf])
	assert.Equal(t, float64(2012), mirror.Metadata["since"])
	_, leaked := primary.Metadata[MetaReciprocalOf]
	assert.False(t, leaked, "primary metadata must not be modified")
}

func TestRelationshipPatch_Apply(t *testing.T) {
	rel := NewRelationship("r-1", "u-1", ContactTarget("c-1"), RelationFriend, time.Now())
	rel.Notes = "keep me"

	strong := StrengthStrong
	ctx := "met at work"
	RelationshipPatch{Strength: &strong, Context: &ctx}.Apply(&rel)

	assert.Equal(t, StrengthStrong, rel.Strength)
	assert.Equal(t, "met at work", rel.Context)
	assert.Equal(t, "keep me", rel.Notes)
	assert.Equal(t, RelationFriend, rel.Relation)
	assert.True(t, RelationshipPatch{}.IsEmpty())
}

func TestParseRelationKind(t *testing.T) {
	for _, s := range []string{"family", "FRIEND", " business ", "Hired"} {
		_, err := ParseRelationKind(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseRelationKind("enemy")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidArgument))
}

func TestMetadata_Validate(t *testing.T) {
	valid := Metadata{
		"s": "x", "n": 1.5, "i": 3, "b": true, "nil": nil,
		"list":   []any{"a", 1.0},
		"nested": map[string]any{"k": []any{false}},
	}
	assert.NoError(t, valid.Validate())

	invalid := Metadata{"when": time.Now()}
	err := invalid.Validate()
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	assert.Error(t, Metadata{"deep": []any{struct{}{}}}.Validate())
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"plumber", "emergency"}, NormalizeTags([]string{" plumber", "", "emergency", "plumber"}))
	assert.NotNil(t, NormalizeTags(nil))
}

func TestSameEndDate(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.In(time.FixedZone("x", 3600))

	assert.True(t, SameEndDate(nil, nil))
	assert.False(t, SameEndDate(&a, nil))
	assert.True(t, SameEndDate(&a, &b))
}
