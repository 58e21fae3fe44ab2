package util

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string for the current time.
func NewULID() string {
	return NewULIDAt(time.Now())
}

// NewULIDAt generates a ULID whose timestamp part is t.
func NewULIDAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
