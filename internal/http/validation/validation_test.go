package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type registerInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestFromBindError(t *testing.T) {
	v := validator.New()

	t.Run("maps validator errors onto json tags", func(t *testing.T) {
		in := registerInput{Email: "not-an-email", Password: "123"}
		err := v.Struct(in)
		if err == nil {
			t.Fatal("expected validation errors")
		}

		out := FromBindError(err, &in)
		if _, ok := out["fullName"]; !ok {
			t.Errorf("missing fullName key: %v", out)
		}
		if _, ok := out["email"]; !ok {
			t.Errorf("missing email key: %v", out)
		}
		if out["password"] != "Must be at least 6 characters." {
			t.Errorf("password message = %q", out["password"])
		}
	})

	t.Run("non-validator errors map to a generic message", func(t *testing.T) {
		out := FromBindError(errors.New("unexpected EOF"), &registerInput{})
		if out["_"] == "" {
			t.Errorf("expected generic error key, got %v", out)
		}
	})
}
