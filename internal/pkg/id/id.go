package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs sort by creation time, which keeps
// policy and notification ids roughly ordered inside a DynamoDB partition.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
