package password

import (
	"errors"
	"fmt"

	"github.com/hypideas/identity-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor applied to new hashes. Stored hashes
// self-describe their cost, so raising this never invalidates old records.
const DefaultCost = 12

// Hasher applies a salted, deliberately slow one-way transform to secrets.
// The zero value is not usable; construct with NewHasher.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's valid range fall back to DefaultCost.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash transforms plaintext into a storable bcrypt hash. The plaintext is
// never retained. An empty plaintext is rejected before any work is done.
func (h Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("empty password: %w", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", domain.ErrUnavailable)
	}
	return string(hash), nil
}

// Verify recomputes the hash using the salt and cost embedded in hashed and
// compares in constant time. A well-formed non-matching hash yields
// (false, nil); a structurally malformed hash yields ErrInvalidInput.
func (h Hasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("malformed credential hash: %w", domain.ErrInvalidInput)
	}
}
