package accounts

import (
	"context"

	"github.com/google/uuid"
)

// Manager orchestrates the account lifecycle. It composes the store,
// the hasher, and the token service, and is the only place the
// lifecycle invariants are wired together. It keeps no account state of
// its own: every operation goes through the store.
//
// Register, Login, RequestPasswordReset, and ResetPassword are
// unauthenticated; every other operation requires a valid bearer token
// from a prior Login.
type Manager struct {
	store  Accounts
	tokens TokenIssuer
	cfg    Config
	logger Logger
}

// NewManager creates a Manager from its collaborators and the process
// config. Call cfg.Validate at startup; the constructor applies
// defaults but does not re-check the signing key.
func NewManager(store Accounts, tokens TokenIssuer, cfg Config) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		cfg:    cfg.withDefaults(),
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the manager.
func (m *Manager) WithLogger(logger Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Authorize verifies a caller-supplied bearer token and returns its
// claims. Any defect in the token collapses to ErrUnauthorized.
func (m *Manager) Authorize(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := m.tokens.Validate(token)
	if err != nil {
		m.logger.Debug("authorization rejected: %v", err)
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// Register creates a new active account. The plaintext password is
// hashed before anything is persisted and is never logged.
func (m *Manager) Register(ctx context.Context, cmd RegisterCommand) (*Account, error) {
	if err := cmd.Validate(); err != nil {
		return nil, invalidPayload(err)
	}

	hash, err := HashPasswordWithCost(cmd.Password, m.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	record := &Account{
		Name:           cmd.Name,
		Email:          cmd.Email,
		PasswordHash:   hash,
		Address:        cmd.Address,
		ProfilePicture: cmd.ProfilePicture,
		IsActive:       true,
	}

	created, err := m.store.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	m.logger.Info("account registered id=%s", created.ID)
	return created, nil
}

// Login verifies credentials and issues a bearer token bound to the
// account id. Unknown email and wrong password are indistinguishable to
// the caller. Soft-disabled accounts cannot sign in.
func (m *Manager) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	record, err := m.store.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !record.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := ComparePasswordAndHash(cmd.Password, record.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := m.tokens.Generate(record.ID.String())
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Account: record}, nil
}

// GetByID fetches one account.
func (m *Manager) GetByID(ctx context.Context, token string, id uuid.UUID) (*Account, error) {
	if _, err := m.Authorize(token); err != nil {
		return nil, err
	}
	return m.store.GetByID(ctx, id)
}

// ListAll fetches every account, most recently registered first.
func (m *Manager) ListAll(ctx context.Context, token string) ([]*Account, error) {
	if _, err := m.Authorize(token); err != nil {
		return nil, err
	}
	return m.store.List(ctx)
}

// GetManyByIDs fetches the accounts matching ids, most recently
// registered first. Unknown ids are omitted, not errors.
func (m *Manager) GetManyByIDs(ctx context.Context, token string, ids []uuid.UUID) ([]*Account, error) {
	if _, err := m.Authorize(token); err != nil {
		return nil, err
	}
	return m.store.GetManyByIDs(ctx, ids)
}

// UpdateProfile applies a partial profile patch. The patch cannot reach
// the password hash or the reset token.
func (m *Manager) UpdateProfile(ctx context.Context, token string, id uuid.UUID, patch AccountPatch) (*Account, error) {
	if _, err := m.Authorize(token); err != nil {
		return nil, err
	}
	return m.store.Update(ctx, id, patch)
}

// DeleteAccount permanently removes an account.
func (m *Manager) DeleteAccount(ctx context.Context, token string, id uuid.UUID) error {
	if _, err := m.Authorize(token); err != nil {
		return err
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.logger.Info("account deleted id=%s", id)
	return nil
}

// RequestPasswordReset issues a time-limited reset token bound to the
// account behind email and stores it as the account's pending token,
// superseding any earlier one. The caller is responsible for delivering
// it to the user; no email is sent here.
//
// This operation is deliberately unauthenticated: the requester is
// typically locked out.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	record, err := m.store.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := m.tokens.GenerateWithTTL(record.ID.String(), m.cfg.ResetTokenTTL)
	if err != nil {
		return "", err
	}

	if err := m.store.SetResetToken(ctx, record.ID, token); err != nil {
		return "", err
	}

	m.logger.Info("password reset requested id=%s", record.ID)
	return token, nil
}

// ResetPassword consumes a reset token and installs a new password. The
// token must both verify cryptographically and still be the account's
// stored pending token; a token that was already consumed or superseded
// fails even though its signature is intact.
func (m *Manager) ResetPassword(ctx context.Context, cmd ResetPasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return invalidPayload(err)
	}

	claims, err := m.tokens.Validate(cmd.ResetToken)
	if err != nil {
		return ErrInvalidResetToken
	}

	id, err := claims.AccountID()
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := HashPasswordWithCost(cmd.NewPassword, m.cfg.BcryptCost)
	if err != nil {
		return err
	}

	if err := m.store.ConsumeResetToken(ctx, id, cmd.ResetToken, hash); err != nil {
		return err
	}

	m.logger.Info("password reset completed id=%s", id)
	return nil
}

// ChangePassword replaces a password after verifying the old one. A
// pending reset token, if any, is left untouched.
func (m *Manager) ChangePassword(ctx context.Context, token string, cmd ChangePasswordCommand) error {
	if _, err := m.Authorize(token); err != nil {
		return err
	}

	if err := cmd.Validate(); err != nil {
		return invalidPayload(err)
	}

	record, err := m.store.GetByID(ctx, cmd.AccountID)
	if err != nil {
		return err
	}

	if err := ComparePasswordAndHash(cmd.OldPassword, record.PasswordHash); err != nil {
		return ErrIncorrectOldPassword
	}

	hash, err := HashPasswordWithCost(cmd.NewPassword, m.cfg.BcryptCost)
	if err != nil {
		return err
	}

	if err := m.store.UpdatePassword(ctx, record.ID, hash); err != nil {
		return err
	}

	m.logger.Info("password changed id=%s", record.ID)
	return nil
}
