package entities

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/ersonp/rolodex/internal/domain/errs"
)

// MetaReciprocalOf is the metadata key a mirror edge uses to point back at
// the edge it mirrors.
const MetaReciprocalOf = "reciprocalOf"

// Metadata is an opaque key-value bag attached to edges and entities.
// Values are limited to JSON kinds: string, bool, number, nil, and arrays or
// objects of those.
type Metadata map[string]any

// Validate checks that every value is one of the supported kinds.
func (m Metadata) Validate() error {
	for k, v := range m {
		if err := validateMetaValue(v); err != nil {
			return errs.InvalidArgument("metadata key %q: %v", k, err)
		}
	}
	return nil
}

func validateMetaValue(v any) error {
	switch val := v.(type) {
	case nil, string, bool,
		float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
		return nil
	case []any:
		for i := range val {
			if err := validateMetaValue(val[i]); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, inner := range val {
			if err := validateMetaValue(inner); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}

// Clone returns a shallow copy; nil stays nil.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// With returns a copy of m with key set to value.
func (m Metadata) With(key string, value any) Metadata {
	out := make(Metadata, len(m)+1)
	maps.Copy(out, m)
	out[key] = value
	return out
}
