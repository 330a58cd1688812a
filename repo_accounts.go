package accounts

import (
	"context"
	"database/sql"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// consumeResetTokenSQL atomically replaces the password hash and clears
// the reset token, but only while the stored token still equals the one
// being consumed. A token that was already used or superseded matches
// zero rows. This is the single-use guarantee; there is no
// read-then-write window.
var consumeResetTokenSQL = `UPDATE accounts
SET
	password_hash = ?,
	reset_token = NULL
WHERE
	id = ?
AND reset_token = ?;`

// Accounts is the persistence contract for account records. The store
// is the sole arbiter of email uniqueness and reset-token consumption;
// both are enforced by database primitives, never by application-level
// checks.
type Accounts interface {
	Create(ctx context.Context, record *Account) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*Account, error)
	Update(ctx context.Context, id uuid.UUID, patch AccountPatch) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Account, error)

	SetResetToken(ctx context.Context, id uuid.UUID, token string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	ConsumeResetToken(ctx context.Context, id uuid.UUID, token, passwordHash string) error
}

// AccountsRepository implements Accounts on top of Bun.
type AccountsRepository struct {
	db *bun.DB
}

var _ Accounts = (*AccountsRepository)(nil)

// NewAccountsRepository creates a new repository.
func NewAccountsRepository(db *bun.DB) *AccountsRepository {
	return &AccountsRepository{db: db}
}

// Create normalizes, validates, and inserts a new account. The id and
// registration timestamp are assigned here and never change afterwards.
// A unique index over email decides duplicates, so concurrent creates
// for the same address cannot both succeed.
func (r *AccountsRepository) Create(ctx context.Context, record *Account) (*Account, error) {
	prepareAccountDefaults(record)
	record.normalize()

	if err := record.validate(); err != nil {
		return nil, err
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, wrapStoreErr(err, "accounts.create")
	}

	return record, nil
}

func (r *AccountsRepository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	record := &Account{}
	err := r.db.NewSelect().
		Model(record).
		Where("acc.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapStoreErr(err, "accounts.get_by_id")
	}
	return record, nil
}

func (r *AccountsRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	record := &Account{}
	err := r.db.NewSelect().
		Model(record).
		Where("acc.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, wrapStoreErr(err, "accounts.get_by_email")
	}
	return record, nil
}

// GetManyByIDs returns the accounts matching ids, most recently
// registered first. Unknown ids are silently omitted.
func (r *AccountsRepository) GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*Account, error) {
	records := make([]*Account, 0, len(ids))
	if len(ids) == 0 {
		return records, nil
	}

	err := r.db.NewSelect().
		Model(&records).
		Where("acc.id IN (?)", bun.In(ids)).
		Order("registered_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "accounts.get_many_by_ids")
	}
	return records, nil
}

// Update applies a partial patch. Absent fields are left untouched;
// present fields go through the same trimming and normalization as
// Create. Password hash and reset token cannot be reached through this
// path.
func (r *AccountsRepository) Update(ctx context.Context, id uuid.UUID, patch AccountPatch) (*Account, error) {
	if err := patch.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid account patch").
			WithTextCode(TextCodeMissingField)
	}

	if patch.isEmpty() {
		return r.GetByID(ctx, id)
	}

	q := r.db.NewUpdate().
		Model((*Account)(nil)).
		Where("id = ?", id)

	if patch.Name != nil {
		q.Set("name = ?", strings.TrimSpace(*patch.Name))
	}
	if patch.Email != nil {
		q.Set("email = ?", NormalizeEmail(*patch.Email))
	}
	if patch.Address != nil {
		q.Set("address = ?", strings.TrimSpace(*patch.Address))
	}
	if patch.ProfilePicture != nil {
		q.Set("profile_picture = ?", strings.TrimSpace(*patch.ProfilePicture))
	}
	if patch.IsActive != nil {
		q.Set("is_active = ?", *patch.IsActive)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, wrapStoreErr(err, "accounts.update")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrAccountNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete permanently removes the record. The id is never reused.
func (r *AccountsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Account)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return wrapStoreErr(err, "accounts.delete")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *AccountsRepository) List(ctx context.Context) ([]*Account, error) {
	var records []*Account
	err := r.db.NewSelect().
		Model(&records).
		Order("registered_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "accounts.list")
	}
	return records, nil
}

// SetResetToken stores a pending reset token on the account, replacing
// any previous one. The superseded token can no longer be consumed.
func (r *AccountsRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string) error {
	res, err := r.db.NewUpdate().
		Model((*Account)(nil)).
		Set("reset_token = ?", token).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return wrapStoreErr(err, "accounts.set_reset_token")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// UpdatePassword replaces the password hash. Any pending reset token is
// left untouched.
func (r *AccountsRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if passwordHash == "" {
		return ErrNoEmptyPassword
	}

	res, err := r.db.NewUpdate().
		Model((*Account)(nil)).
		Set("password_hash = ?", passwordHash).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return wrapStoreErr(err, "accounts.update_password")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// ConsumeResetToken replaces the password hash and clears the reset
// token in one conditional statement. Zero affected rows means the
// token was never issued, already consumed, or superseded.
func (r *AccountsRepository) ConsumeResetToken(ctx context.Context, id uuid.UUID, token, passwordHash string) error {
	if passwordHash == "" {
		return ErrNoEmptyPassword
	}

	res, err := r.db.NewRaw(consumeResetTokenSQL, passwordHash, id, token).Exec(ctx)
	if err != nil {
		return wrapStoreErr(err, "accounts.consume_reset_token")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrInvalidResetToken
	}

	return nil
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if record.RegisteredAt.IsZero() {
		record.RegisteredAt = nowFunc()
	}
}

// isUniqueViolation detects unique-index rejections across the drivers
// this store runs against (sqlite, postgres, mysql). Driver packages do
// not share a typed error for this.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "Error 1062")
}
