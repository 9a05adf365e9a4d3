package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/model"
)

// Identity is who the auth collaborator says the caller is after a
// successful sign-in or sign-up.
type Identity struct {
	Email       string
	FirstName   string
	LastName    string
	AccessToken string
}

// ProfileStore is the row-storage collaborator. A profile is read and
// written wholesale: budget and transactions travel together in every save
// so a failure can never leave the record half-updated.
type ProfileStore interface {
	// FetchProfile returns model.ErrProfileNotFound when no record exists.
	FetchProfile(ctx context.Context, email string) (*model.UserProfile, error)
	InsertProfile(ctx context.Context, profile *model.UserProfile) error
	SaveProfile(ctx context.Context, email string, budget decimal.Decimal, transactions []model.Transaction) error
}

// Authenticator is the auth collaborator. Failures map onto the fixed
// error set in the model package (invalid credentials, unconfirmed email,
// rate limited, already registered, weak password).
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// SignUp reports confirmed=false when the account still needs email
	// verification before it can sign in.
	SignUp(ctx context.Context, email, password, firstName, lastName string) (identity *Identity, confirmed bool, err error)
	ResendVerification(ctx context.Context, email string) error
	SignOut(ctx context.Context, accessToken string) error
}

// profileRecord is the persisted row shape. Column names are snake_case on
// the storage side; the transactions column is historically named expenses
// even though it holds both directions.
type profileRecord struct {
	Email        string              `json:"email"`
	FirstName    string              `json:"first_name,omitempty"`
	LastName     string              `json:"last_name,omitempty"`
	Budget       decimal.Decimal     `json:"budget"`
	Expenses     []model.Transaction `json:"expenses"`
	Goals        []model.Goal        `json:"goals,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at,omitempty"`
	PasswordHash string              `json:"password_hash,omitempty"`
}

func (r *profileRecord) toProfile() *model.UserProfile {
	txs := r.Expenses
	if txs == nil {
		txs = []model.Transaction{}
	}
	return &model.UserProfile{
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Budget:       r.Budget,
		Transactions: txs,
		Goals:        r.Goals,
		UpdatedAt:    r.UpdatedAt,
	}
}

func recordFromProfile(p *model.UserProfile) *profileRecord {
	return &profileRecord{
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Budget:    p.Budget,
		Expenses:  p.Transactions,
		Goals:     p.Goals,
		UpdatedAt: p.UpdatedAt,
	}
}
