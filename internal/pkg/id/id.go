package id

import (
	"crypto/rand"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New generates the identifier used for principals and sessions: a random
// UUID in its canonical textual form. Generation never fails; an exhausted
// entropy source panics, which is treated as process-level corruption.
func New() string {
	return uuid.NewString()
}

// NewSortable generates a ULID string. ULIDs are lexicographically sortable
// by creation time and used for secondary records (challenges, notifications,
// files) where scan order matters.
func NewSortable() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
