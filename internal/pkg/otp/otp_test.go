package otp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_RangeAndShape(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := Issue()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)
		assert.NotEqual(t, byte('0'), code[0], "code must not have a leading zero")

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestVerify_PlaceholderPolicy(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		want      bool
	}{
		{"sentinel", "123456", true},
		{"any six characters", "000000", true},
		{"six letters", "abcdef", true},
		{"too short", "12345", false},
		{"too long", "1234567", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.submitted))
		})
	}
}
