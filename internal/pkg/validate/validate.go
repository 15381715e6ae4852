package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// academicDomains is the allow-list used for institutional verification.
// Suffix-style entries (".edu", ".ac.") match any institution; named domains
// cover large institutions with non-standard TLDs.
var academicDomains = []string{
	".edu", ".ac.", ".university", ".college", ".school",
	"mit.edu", "stanford.edu", "harvard.edu", "caltech.edu",
	"ox.ac.uk", "cam.ac.uk", "imperial.ac.uk",
}

// IsValidEmail reports whether email has the local@domain shape.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPhone reports whether phone has at least 10 digit-like characters,
// allowing separators and a leading +.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// IsAcademicEmail reports whether email matches the institutional allow-list.
func IsAcademicEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, d := range academicDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}
