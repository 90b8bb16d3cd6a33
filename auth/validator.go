// Package auth validates user-facing input before it reaches the network.
package auth

import (
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"

	"persona-chat/contract"
	"persona-chat/errors"
)

var validate = validator.New()

type SignupRequest struct {
	Name     string `validate:"required,max=40"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=12,max=72"`
}

// ValidateSignup checks the signup form: structural rules first, password
// complexity second, so the cheap checks fail before the character scan.
func ValidateSignup(req SignupRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if !isPasswordComplex(req.Password) {
		return fmt.Errorf("%w: password must mix upper, lower, digit and symbol", errors.ErrInvalidRequest)
	}
	return nil
}

// ValidatePersona checks a persona-creation payload: a name is required and
// the DISC type must be one of the four symbols.
func ValidatePersona(req contract.CreatePersonaRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
