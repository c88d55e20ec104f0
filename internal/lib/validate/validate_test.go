package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subflow/admin-client/internal/lib/validate"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "admin@example.com", wantErr: false},
		{name: "missing at", email: "admin.example.com", wantErr: true},
		{name: "empty", email: "", wantErr: true},
		{name: "spaces", email: "admin @example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Email(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOTP(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "six digits", code: "123456", wantErr: false},
		{name: "too short", code: "12345", wantErr: true},
		{name: "too long", code: "1234567", wantErr: true},
		{name: "letters", code: "12a456", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.OTP(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validate.NewPassword("secret123", "secret123"))
	})

	t.Run("too short", func(t *testing.T) {
		err := validate.NewPassword("abc", "abc")
		require.Error(t, err)
		assert.True(t, errors.Is(err, validate.ErrPasswordTooShort))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := validate.NewPassword("secret123", "secret124")
		require.Error(t, err)
		assert.True(t, errors.Is(err, validate.ErrPasswordMismatch))
	})
}
