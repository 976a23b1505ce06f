package handlers

import (
	"strings"
	"time"

	"github.com/ersonp/rolodex/internal/domain/entities"
	"github.com/ersonp/rolodex/internal/domain/errs"
)

// DateLayout is the short date form accepted alongside RFC 3339.
const DateLayout = "2006-01-02"

// ParseDate parses a date or timestamp. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errs.InvalidArgument("invalid date %q (use %s or RFC 3339)", s, DateLayout)
}

func parseTargetKind(s string) (entities.TargetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "contact":
		return entities.TargetContact, nil
	case "entity":
		return entities.TargetEntity, nil
	default:
		return "", errs.InvalidArgument("invalid target kind %q (valid: contact, entity)", s)
	}
}
