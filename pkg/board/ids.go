package board

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator mints opaque token ids. Ids must never repeat for the lifetime
// of a board.
type IDGenerator func() string

// NewTokenID generates a UUID v7 token id.
func NewTokenID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// SequentialIDs returns a generator yielding prefix1, prefix2, ...
func SequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
