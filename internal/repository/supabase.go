package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	gotrue "github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"

	"github.com/foresightmx/foresight/internal/model"
)

const profilesTable = "profiles"

// SupabaseRepository backs the auth and profile-storage collaborators with
// Supabase: gotrue for identity, one postgrest row per user for data.
type SupabaseRepository struct {
	client *supabase.Client
}

// NewSupabaseRepository connects to a Supabase project.
func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &SupabaseRepository{client: client}, nil
}

// FetchProfile loads the stored profile row for an email address.
func (r *SupabaseRepository) FetchProfile(ctx context.Context, email string) (*model.UserProfile, error) {
	data, _, err := r.client.From(profilesTable).
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	var records []profileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if len(records) == 0 {
		return nil, model.ErrProfileNotFound
	}
	return records[0].toProfile(), nil
}

// InsertProfile creates the initial row for a user.
func (r *SupabaseRepository) InsertProfile(ctx context.Context, profile *model.UserProfile) error {
	record := recordFromProfile(profile)
	record.UpdatedAt = time.Now().UTC()
	_, _, err := r.client.From(profilesTable).
		Insert(record, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// SaveProfile writes budget and transactions together as one update. There
// is no narrower write path, so a rejected save leaves the stored record
// exactly as it was.
func (r *SupabaseRepository) SaveProfile(ctx context.Context, email string, budget decimal.Decimal, transactions []model.Transaction) error {
	patch := map[string]any{
		"budget":     budget,
		"expenses":   transactions,
		"updated_at": time.Now().UTC(),
	}
	_, _, err := r.client.From(profilesTable).
		Update(patch, "", "").
		Eq("email", email).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// SignIn authenticates with email and password.
func (r *SupabaseRepository) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	resp, err := r.client.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, mapAuthError(err)
	}

	identity := &Identity{
		Email:       email,
		AccessToken: resp.AccessToken,
	}
	if meta := resp.User.UserMetadata; meta != nil {
		identity.FirstName, _ = meta["first_name"].(string)
		identity.LastName, _ = meta["last_name"].(string)
	}
	return identity, nil
}

// SignUp registers a new account, stashing the name fields in the user
// metadata so profile creation can pick them up after confirmation.
func (r *SupabaseRepository) SignUp(ctx context.Context, email, password, firstName, lastName string) (*Identity, bool, error) {
	resp, err := r.client.Auth.Signup(gotrue.SignupRequest{
		Email:    email,
		Password: password,
		Data: map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
		},
	})
	if err != nil {
		return nil, false, mapAuthError(err)
	}

	identity := &Identity{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		AccessToken: resp.AccessToken,
	}
	// With email confirmation enabled the signup response carries no
	// session; the user must verify before signing in.
	confirmed := resp.AccessToken != ""
	return identity, confirmed, nil
}

// ResendVerification asks gotrue to send a fresh confirmation email.
func (r *SupabaseRepository) ResendVerification(ctx context.Context, email string) error {
	err := r.client.Auth.OTP(gotrue.OTPRequest{
		Email:      email,
		CreateUser: false,
	})
	if err != nil {
		return mapAuthError(err)
	}
	return nil
}

// SignOut revokes the session token.
func (r *SupabaseRepository) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	if err := r.client.Auth.WithToken(accessToken).Logout(); err != nil {
		log.Warn().Err(err).Msg("sign-out token revocation failed")
		return mapAuthError(err)
	}
	return nil
}

// mapAuthError folds gotrue's free-text errors into the fixed set the UI
// understands. Unrecognized errors pass through wrapped.
func mapAuthError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "security purposes"):
		return model.ErrRateLimited
	case strings.Contains(msg, "invalid login") || strings.Contains(msg, "invalid credentials"):
		return model.ErrInvalidCredentials
	case strings.Contains(msg, "already registered") || strings.Contains(msg, "already exists"):
		return model.ErrUserExists
	case strings.Contains(msg, "not confirmed"):
		return model.ErrEmailNotConfirmed
	case strings.Contains(msg, "user not found"):
		return model.ErrUserNotFound
	case strings.Contains(msg, "password"):
		return model.ErrWeakPassword
	default:
		return fmt.Errorf("auth request failed: %w", err)
	}
}
