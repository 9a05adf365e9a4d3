// Package testutil provides in-memory fakes of the storage and auth
// collaborators for tests.
package testutil

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/repository"
)

// ErrStorageDown is the persistence failure injected by FailSaves.
var ErrStorageDown = errors.New("storage unavailable")

// MockProfileStore is an in-memory ProfileStore with failure injection.
type MockProfileStore struct {
	Profiles map[string]*model.UserProfile

	// FailSaves makes SaveProfile fail without touching the stored record.
	FailSaves bool
	// FetchAlwaysAbsent simulates a store that accepts inserts but never
	// returns the record.
	FetchAlwaysAbsent bool

	SaveCalls   int
	InsertCalls int
}

// NewMockProfileStore creates an empty store.
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{Profiles: make(map[string]*model.UserProfile)}
}

// AddProfile seeds a stored profile.
func (m *MockProfileStore) AddProfile(p *model.UserProfile) {
	m.Profiles[p.Email] = p
}

func (m *MockProfileStore) FetchProfile(ctx context.Context, email string) (*model.UserProfile, error) {
	if m.FetchAlwaysAbsent {
		return nil, model.ErrProfileNotFound
	}
	p, ok := m.Profiles[email]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *MockProfileStore) InsertProfile(ctx context.Context, profile *model.UserProfile) error {
	m.InsertCalls++
	clone := *profile
	m.Profiles[profile.Email] = &clone
	return nil
}

func (m *MockProfileStore) SaveProfile(ctx context.Context, email string, budget decimal.Decimal, transactions []model.Transaction) error {
	m.SaveCalls++
	if m.FailSaves {
		return ErrStorageDown
	}
	p, ok := m.Profiles[email]
	if !ok {
		return model.ErrProfileNotFound
	}
	p.Budget = budget
	p.Transactions = transactions
	return nil
}

// MockAuthenticator accepts any credentials it was seeded with.
type MockAuthenticator struct {
	Passwords map[string]string
	// Unconfirmed makes SignUp report that email verification is pending.
	Unconfirmed bool

	ResendCalls  []string
	SignOutCalls []string
}

// NewMockAuthenticator creates an authenticator with no accounts.
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{Passwords: make(map[string]string)}
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (*repository.Identity, error) {
	stored, ok := m.Passwords[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	if stored != password {
		return nil, model.ErrInvalidCredentials
	}
	return &repository.Identity{Email: email, AccessToken: "token-" + email}, nil
}

func (m *MockAuthenticator) SignUp(ctx context.Context, email, password, firstName, lastName string) (*repository.Identity, bool, error) {
	if _, ok := m.Passwords[email]; ok {
		return nil, false, model.ErrUserExists
	}
	m.Passwords[email] = password
	identity := &repository.Identity{Email: email, FirstName: firstName, LastName: lastName, AccessToken: "token-" + email}
	return identity, !m.Unconfirmed, nil
}

func (m *MockAuthenticator) ResendVerification(ctx context.Context, email string) error {
	m.ResendCalls = append(m.ResendCalls, email)
	return nil
}

func (m *MockAuthenticator) SignOut(ctx context.Context, accessToken string) error {
	m.SignOutCalls = append(m.SignOutCalls, accessToken)
	return nil
}
