package accounts

import (
	"strings"
	"time"

	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is the persisted account record. PasswordHash and ResetToken
// are internal state: they never serialize and are only written through
// the dedicated repository operations.
type Account struct {
	bun.BaseModel  `bun:"table:accounts,alias:acc"`
	ID             uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name           string    `bun:"name,notnull" json:"name"`
	Email          string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash   string    `bun:"password_hash,notnull" json:"-"`
	Address        string    `bun:"address" json:"address,omitempty"`
	ProfilePicture string    `bun:"profile_picture" json:"profile_picture,omitempty"`
	RegisteredAt   time.Time `bun:"registered_at,notnull" json:"registered_at"`
	ResetToken     *string   `bun:"reset_token,nullzero" json:"-"`
	IsActive       bool      `bun:"is_active" json:"is_active"`
}

// NormalizeEmail lowercases and trims an address so one mailbox maps to
// exactly one stored value.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalize applies the field normalization shared by create and update.
func (a *Account) normalize() {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = NormalizeEmail(a.Email)
	a.Address = strings.TrimSpace(a.Address)
	a.ProfilePicture = strings.TrimSpace(a.ProfilePicture)
}

func (a *Account) validate() error {
	if a.Name == "" {
		return ErrMissingField
	}
	if !isEmail(a.Email) {
		return errors.New("email address is invalid", errors.CategoryValidation).
			WithTextCode(TextCodeMissingField).
			WithMetadata(map[string]any{"email": a.Email})
	}
	if a.PasswordHash == "" {
		return errors.New("account has no password hash", errors.CategoryInternal)
	}
	return nil
}

// isEmail applies the same address rule used on registration payloads,
// so an address a create would reject can never arrive through an
// update. Bare addresses only; name-addr forms do not pass.
func isEmail(email string) bool {
	if email == "" {
		return false
	}
	return is.Email.Validate(email) == nil
}

// AccountPatch is a partial profile update. Nil fields are left
// untouched. Password hash and reset token are deliberately absent:
// those change only through the password operations.
type AccountPatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Address        *string `json:"address,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// Validate runs validation rules on the present fields.
func (p AccountPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("name must not be blank", errors.CategoryValidation).
			WithTextCode(TextCodeMissingField).
			WithCode(errors.CodeBadRequest)
	}
	if p.Email != nil && !isEmail(NormalizeEmail(*p.Email)) {
		return errors.New("email address is invalid", errors.CategoryValidation).
			WithTextCode(TextCodeMissingField).
			WithCode(errors.CodeBadRequest)
	}
	return nil
}

func (p AccountPatch) isEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Address == nil &&
		p.ProfilePicture == nil && p.IsActive == nil
}
