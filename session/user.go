package session

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID identifies an authenticated principal.  It's derived from the
// provider's subject claim and is comparable, so it can be used directly as a
// map key.
//
// Note: the id is derived from the subject alone, without binding it to the
// issuer.  Two providers issuing the same subject value would collide; a
// single provider is configured today.
type UserID uuid.UUID

// ParseUserID parses a subject claim in canonical UUID form into a UserID.
func ParseUserID(subject string) (UserID, error) {
	const op = "session.ParseUserID"
	u, err := uuid.Parse(subject)
	if err != nil {
		return UserID{}, fmt.Errorf("%s: subject %q is not a valid user id: %w", op, subject, ErrInvalidParameter)
	}
	return UserID(u), nil
}

// NewUserID generates a random UserID.  It's used as a fallback identity when
// a provider's subject claim isn't parseable as an id.
func NewUserID() (UserID, error) {
	const op = "session.NewUserID"
	u, err := uuid.NewRandom()
	if err != nil {
		return UserID{}, fmt.Errorf("%s: unable to generate user id: %w", op, err)
	}
	return UserID(u), nil
}

// String returns the canonical UUID string form of the id.
func (id UserID) String() string {
	return uuid.UUID(id).String()
}
