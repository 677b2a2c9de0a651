package models

import (
	"crypto/rand"
	"fmt"
	"time"
)

const userIDLength = 64

// User is a session-scoped borrower identity. Users are created anonymously
// on first use; the opaque random ID is the only authorization handle and
// every submission operation is scoped to it.
type User struct {
	ID          []byte `db:"id"`
	DisplayName string `db:"display_name"`
}

func NewUser() (*User, error) {
	id := make([]byte, userIDLength)
	if _, err := rand.Read(id); err != nil {
		return nil, err
	}
	return &User{
		ID:          id,
		DisplayName: fmt.Sprintf("Borrower registered at %s", time.Now().Format(time.RFC3339)),
	}, nil
}
