package accounts_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	accounts "github.com/arkholt/go-accounts"
)

// MockAccounts is a testify mock for the Accounts store interface.
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Create(ctx context.Context, account *accounts.Account) (*accounts.Account, error) {
	args := m.Called(ctx, account)
	return mockAccount(args, 0), args.Error(1)
}

func (m *MockAccounts) GetByID(ctx context.Context, id uuid.UUID) (*accounts.Account, error) {
	args := m.Called(ctx, id)
	return mockAccount(args, 0), args.Error(1)
}

func (m *MockAccounts) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	args := m.Called(ctx, email)
	return mockAccount(args, 0), args.Error(1)
}

func (m *MockAccounts) GetManyByIDs(ctx context.Context, ids []uuid.UUID) ([]*accounts.Account, error) {
	args := m.Called(ctx, ids)
	var out []*accounts.Account
	if v := args.Get(0); v != nil {
		out = v.([]*accounts.Account)
	}
	return out, args.Error(1)
}

func (m *MockAccounts) Update(ctx context.Context, id uuid.UUID, patch accounts.AccountPatch) (*accounts.Account, error) {
	args := m.Called(ctx, id, patch)
	return mockAccount(args, 0), args.Error(1)
}

func (m *MockAccounts) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAccounts) List(ctx context.Context) ([]*accounts.Account, error) {
	args := m.Called(ctx)
	var out []*accounts.Account
	if v := args.Get(0); v != nil {
		out = v.([]*accounts.Account)
	}
	return out, args.Error(1)
}

func (m *MockAccounts) SetResetToken(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockAccounts) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockAccounts) ConsumeResetToken(ctx context.Context, id uuid.UUID, token, passwordHash string) error {
	args := m.Called(ctx, id, token, passwordHash)
	return args.Error(0)
}

func mockAccount(args mock.Arguments, index int) *accounts.Account {
	if v := args.Get(index); v != nil {
		return v.(*accounts.Account)
	}
	return nil
}

// MockTokenIssuer is a testify mock for the TokenIssuer interface.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Generate(subject string) (string, error) {
	args := m.Called(subject)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) GenerateWithTTL(subject string, ttl time.Duration) (string, error) {
	args := m.Called(subject, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) Validate(token string) (*accounts.Claims, error) {
	args := m.Called(token)
	if v := args.Get(0); v != nil {
		return v.(*accounts.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}
