package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUp struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname,omitempty" validate:"max=3"`
}

func TestCustomValidator_Validate(t *testing.T) {
	cv := New()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, cv.Validate(&signUp{Email: "a@x.com", Password: "pw"}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := cv.Validate(&signUp{Email: "not-an-email", Nickname: "toolong"})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []FieldError{
			{Field: "email", Message: "email must be a valid email"},
			{Field: "password", Message: "password is required"},
			{Field: "nickname", Message: "nickname must be at most 3 characters"},
		}, validationErr.Fields)
		assert.Equal(t, "email must be a valid email; password is required; nickname must be at most 3 characters", err.Error())
	})

	t.Run("non struct input", func(t *testing.T) {
		err := cv.Validate("plain string")

		require.Error(t, err)
		var validationErr *ValidationError
		assert.NotErrorAs(t, err, &validationErr)
	})
}
