package assessment

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

// IntakeWarning is shown when the intake form is incomplete.
const IntakeWarning = "Please enter both your name and email to continue."

// EmailWarning is shown when the email address is malformed.
const EmailWarning = "Please enter a valid email address."

var (
	// ErrIntakeIncomplete is returned when name or email is empty.
	ErrIntakeIncomplete = errors.New("name and email are required")

	// ErrInvalidEmail is returned when the email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Intake holds the user's identification.
type Intake struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email,max=254"`
}

var validate = validator.New()

// NewIntake normalizes and validates name and email.
func NewIntake(name, email string) (Intake, error) {
	in := Intake{
		Name:  norm.NFC.String(strings.Join(strings.Fields(name), " ")),
		Email: strings.TrimSpace(email),
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "required" {
					return Intake{}, ErrIntakeIncomplete
				}
			}
			for _, fe := range verrs {
				if fe.Field() == "Email" {
					return Intake{}, ErrInvalidEmail
				}
			}
		}
		return Intake{}, err
	}
	return in, nil
}

// Warning returns the message to show the user for an intake error.
func Warning(err error) string {
	switch {
	case errors.Is(err, ErrIntakeIncomplete):
		return IntakeWarning
	case errors.Is(err, ErrInvalidEmail):
		return EmailWarning
	case err != nil:
		return err.Error()
	}
	return ""
}
