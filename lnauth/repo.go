package lnauth

import "context"

// SessionRepo is the pluggable persistence contract for in-flight login
// sessions. The engine depends on these semantics, not on any particular
// backing store:
//
//   - Get after Delete must report ErrSessionNotFound.
//   - Update must merge the patch onto the existing record, not replace it.
//   - Each operation must be atomic per key; Update in particular is a
//     read-modify-write that must not interleave with other writers.
type SessionRepo interface {
	Set(ctx context.Context, k1 string, session *Session) error
	Get(ctx context.Context, k1 string) (*Session, error)
	Update(ctx context.Context, k1 string, patch *SessionPatch) error
	Delete(ctx context.Context, k1 string) error
}
