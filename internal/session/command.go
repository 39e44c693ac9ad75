package session

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "emotiguide/internal/errors"
)

// Placeholder values used when a login field is left blank.
const (
	DefaultUsername = "Student101"
	DefaultFullName = "Guest Student"
	DefaultEmail    = "guest@example.com"
)

// LoginMode selects between the sign-in and the register form.
type LoginMode string

const (
	ModeLogin    LoginMode = "login"
	ModeRegister LoginMode = "register"
)

// LoginCommand is the input for Store.Login.
// The password is required but never stored or verified.
type LoginCommand struct {
	Mode     LoginMode `json:"mode" validate:"omitempty,oneof=login register"`
	Username string    `json:"username" validate:"max=64"`
	Password string    `json:"password"`
	FullName string    `json:"fullName" validate:"max=128"`
	Email    string    `json:"email" validate:"omitempty,email"`
	Major    string    `json:"major" validate:"max=128"`
}

var validate = validator.New()

// Validate trims the command and checks required and format constraints.
func (c *LoginCommand) Validate() error {
	c.Username = strings.TrimSpace(c.Username)
	c.Password = strings.TrimSpace(c.Password)
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.Major = strings.TrimSpace(c.Major)

	if c.Password == "" {
		return apperrors.NewValidationError("password", apperrors.ErrRequired)
	}
	if c.Mode == ModeRegister {
		if c.FullName == "" {
			return apperrors.NewValidationError("fullName", apperrors.ErrRequired)
		}
		if c.Email == "" {
			return apperrors.NewValidationError("email", apperrors.ErrRequired)
		}
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return apperrors.NewValidationError(jsonName(first.Field()), errors.New("failed "+first.Tag()+" check"))
		}
		return apperrors.NewValidationError("credentials", err)
	}
	return nil
}

func jsonName(field string) string {
	if field == "FullName" {
		return "fullName"
	}
	return strings.ToLower(field)
}
