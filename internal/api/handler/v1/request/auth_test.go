package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "alice@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password1",
		Name:            "Alice",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("weak passwords", func(t *testing.T) {
		for _, password := range []string{"short1", "nodigitshere", "12345678"} {
			req := valid
			req.Password = password
			req.ConfirmPassword = password
			assert.ErrorIs(t, req.Validate(), errInvalidPassword, password)
		}
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "Password2"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("missing name", func(t *testing.T) {
		req := valid
		req.Name = ""
		assert.Error(t, req.Validate())
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "alice@example.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "alice@example.com", Password: ""}).Validate())
}
