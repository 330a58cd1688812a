package accounts

import (
	"github.com/goliatone/go-errors"
)

const (
	// TextCodeMissingField marks payloads with absent required fields
	TextCodeMissingField = "MISSING_FIELD"
	// TextCodeDuplicateEmail marks registrations against a taken email
	TextCodeDuplicateEmail = "DUPLICATE_EMAIL"
	// TextCodeAccountNotFound marks lookups for unknown accounts
	TextCodeAccountNotFound = "ACCOUNT_NOT_FOUND"
	// TextCodeInvalidCreds marks failed login attempts
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeIncorrectOldPassword marks password changes with a bad old password
	TextCodeIncorrectOldPassword = "INCORRECT_OLD_PASSWORD"
	// TextCodeInvalidResetToken marks unusable password reset tokens
	TextCodeInvalidResetToken = "INVALID_RESET_TOKEN"
	// TextCodeUnauthorized marks requests without a usable bearer token
	TextCodeUnauthorized = "UNAUTHORIZED"
	// TextCodeInvalidToken marks bearer tokens that fail verification
	TextCodeInvalidToken = "INVALID_TOKEN"
	// TextCodeAccountDisabled marks logins against soft-disabled accounts
	TextCodeAccountDisabled = "ACCOUNT_DISABLED"
	// TextCodeEmptyPassword marks empty plaintext passwords
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
)

// ErrMissingField is returned when a required field is absent from a payload.
var ErrMissingField = errors.New("required field is missing", errors.CategoryValidation).
	WithTextCode(TextCodeMissingField).
	WithCode(errors.CodeBadRequest)

// ErrDuplicateEmail is returned when the email uniqueness constraint rejects a write.
var ErrDuplicateEmail = errors.New("an account with this email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrAccountNotFound is returned for lookups that match no account.
var ErrAccountNotFound = errors.New("account not found", errors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidCredentials is returned on login failure. Unknown email and
// wrong password produce this same value so callers cannot enumerate
// registered addresses.
var ErrInvalidCredentials = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrIncorrectOldPassword is returned when a password change supplies an
// old password that does not verify against the stored hash.
var ErrIncorrectOldPassword = errors.New("old password is incorrect", errors.CategoryAuth).
	WithTextCode(TextCodeIncorrectOldPassword).
	WithCode(errors.CodeBadRequest)

// ErrInvalidResetToken is returned for reset tokens that fail signature
// or expiry checks, or that no longer match the stored token. The three
// cases are indistinguishable from the return value.
var ErrInvalidResetToken = errors.New("invalid or expired reset token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidResetToken).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthorized is returned by authenticated operations when the
// caller-supplied bearer token is missing or fails verification.
var ErrUnauthorized = errors.New("authorization token is missing or invalid", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidToken is the single outcome TokenService reports for tokens
// that are expired, tampered with, or otherwise unusable.
var ErrInvalidToken = errors.New("invalid or expired token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeUnauthorized)

// ErrAccountDisabled is returned when an otherwise valid login targets a
// soft-disabled account.
var ErrAccountDisabled = errors.New("account is disabled", errors.CategoryAuth).
	WithTextCode(TextCodeAccountDisabled).
	WithCode(errors.CodeForbidden)

// ErrNoEmptyPassword rejects empty plaintext passwords before hashing.
var ErrNoEmptyPassword = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the hasher-level mismatch result.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// IsNotFound reports whether err is an account-not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.IsNotFound(err)
}

// IsDuplicateEmail reports whether err is an email uniqueness failure.
func IsDuplicateEmail(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}

// wrapStoreErr tags an unexpected persistence failure with the operation
// that was in flight. Typed failures pass through untouched.
func wrapStoreErr(err error, op string) error {
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich
	}
	return errors.Wrap(err, errors.CategoryInternal, "account store failure").
		WithMetadata(map[string]any{"operation": op})
}
