// internal/types/ids.go
package types

import (
	"github.com/google/uuid"
)

// SessionID uniquely identifies one recording session. It is stamped into
// the session manifest and the report footer.
type SessionID string

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}
