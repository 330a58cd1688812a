package accounts

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// RegisterCommand creates a new account.
type RegisterCommand struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Address        string `json:"address,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Validate will run validation rules
func (c RegisterCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

// LoginCommand authenticates an existing account. It carries no
// validation rules: an absent or wrong value in either field must
// surface as the same InvalidCredentials outcome, never as a field
// error that reveals which part was bad.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the successful outcome of Login.
type LoginResult struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}

// ResetPasswordCommand consumes a reset token and sets a new password.
type ResetPasswordCommand struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

// Validate will run validation rules
func (c ResetPasswordCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ResetToken, validation.Required),
		validation.Field(&c.NewPassword, validation.Required),
	)
}

// ChangePasswordCommand replaces a password after proving knowledge of
// the current one.
type ChangePasswordCommand struct {
	AccountID   uuid.UUID `json:"account_id"`
	OldPassword string    `json:"old_password"`
	NewPassword string    `json:"new_password"`
}

// Validate will run validation rules
func (c ChangePasswordCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OldPassword, validation.Required),
		validation.Field(&c.NewPassword, validation.Required),
	)
}

// invalidPayload converts a validation failure into the stable
// missing-field error shape.
func invalidPayload(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "missing or invalid fields").
		WithTextCode(TextCodeMissingField).
		WithCode(goerrors.CodeBadRequest)
}
