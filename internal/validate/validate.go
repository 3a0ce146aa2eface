package validate

import (
	"MindTrace/internal/models"
	"MindTrace/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is enforced before any reset/signup request goes out.
const MinPasswordLength = 6

var v = validator.New()

// ResetPassword checks a new password and its confirmation. Both checks
// run before any network call.
func ResetPassword(newPassword, confirm string) error {
	if len(newPassword) < MinPasswordLength {
		return errors.WithCodef(errors.CodeValidation, "Password must be at least %d characters", MinPasswordLength)
	}
	if newPassword != confirm {
		return errors.WithCode(errors.CodeValidation, "Passwords do not match")
	}
	return nil
}

// ProfileFields checks the editable profile fields.
func ProfileFields(fullName, email string) error {
	if fullName == "" {
		return errors.WithCode(errors.CodeValidation, "Name is required")
	}
	if email == "" {
		return errors.WithCode(errors.CodeValidation, "Email is required")
	}
	if err := v.Var(email, "email"); err != nil {
		return errors.WithCode(errors.CodeValidation, "Enter a valid email address")
	}
	return nil
}

// SOSContact checks the required emergency-contact fields.
func SOSContact(contact models.SOSContact) error {
	if contact.Name == "" {
		return errors.WithCode(errors.CodeValidation, "Contact name is required")
	}
	if contact.Phone == "" {
		return errors.WithCode(errors.CodeValidation, "Phone number is required")
	}
	if contact.Email != "" {
		if err := v.Var(contact.Email, "email"); err != nil {
			return errors.WithCode(errors.CodeValidation, "Enter a valid email address")
		}
	}
	return nil
}

// FaceRegistration checks the enrollment form.
func FaceRegistration(name, relation string) error {
	if name == "" {
		return errors.WithCode(errors.CodeValidation, "Name is required")
	}
	if relation == "" {
		return errors.WithCode(errors.CodeValidation, "Relation is required")
	}
	return nil
}
