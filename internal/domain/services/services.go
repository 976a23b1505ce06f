// Package services contains domain business logic.
package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// newID returns a new record id.
var newID = func() string {
	return uuid.New().String()
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
