package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"jane.doe@university.ac.uk", true},
		{"not-an-email", false},
		{"spaces in@local.com", false},
		{"@no-local.com", false},
		{"no-domain@", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), tt.email)
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+1 (555) 123-4567", true},
		{"5551234567", true},
		{"12345", false},
		{"not a phone", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPhone(tt.phone), tt.phone)
	}
}

func TestIsAcademicEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"x@mit.edu", true},
		{"X@MIT.EDU", true},
		{"jane@some.ac.uk", true},
		{"jane@open.university", true},
		{"x@gmail.com", false},
		{"x@company.org", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAcademicEmail(tt.email), tt.email)
	}
}

func TestStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	assert.NoError(t, Struct(&payload{Email: "a@b.com"}))
	assert.Error(t, Struct(&payload{}))
}
