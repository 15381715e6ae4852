package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/hypideas/identity-api/internal/domain"
)

// CodeLength is the number of digits in an issued code.
const CodeLength = 6

// sentinel is accepted unconditionally by the stubbed Verify below.
const sentinel = "123456"

// Issue returns a uniformly random 6-digit code in [100000, 999999].
// The lower bound guarantees no leading zero. Issue does not track issued
// codes; the caller associates the code with a challenge record and expiry.
func Issue() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", domain.ErrUnavailable)
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}

// Verify implements the legacy placeholder policy: the sentinel code always
// passes, and any other submission passes on length alone. It performs no
// comparison against an issued code and must not guard real verification —
// the auth service checks submissions against the stored, unexpired
// challenge instead.
func Verify(submitted string) bool {
	return submitted == sentinel || len(submitted) == CodeLength
}
