package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"

	"github.com/foresightmx/foresight/internal/model"
)

var profilesBucket = []byte("profiles")

// LocalRepository is the offline fallback when no Supabase project is
// configured: a bbolt key-value file with one record per user, keyed
// user_<email>, holding the whole profile plus a password hash. It satisfies
// the same wholesale read/write contract as the remote store.
type LocalRepository struct {
	db *bolt.DB
}

// OpenLocal opens (or creates) the local profile store.
func OpenLocal(path string) (*LocalRepository, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(profilesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init local store: %w", err)
	}
	return &LocalRepository{db: db}, nil
}

// Close releases the underlying file.
func (r *LocalRepository) Close() error { return r.db.Close() }

func userKey(email string) []byte { return []byte("user_" + email) }

func (r *LocalRepository) getRecord(email string) (*profileRecord, error) {
	var record *profileRecord
	err := r.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(profilesBucket).Get(userKey(email))
		if raw == nil {
			return nil
		}
		record = &profileRecord{}
		return json.Unmarshal(raw, record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read local profile: %w", err)
	}
	return record, nil
}

func (r *LocalRepository) putRecord(record *profileRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode local profile: %w", err)
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(profilesBucket).Put(userKey(record.Email), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to write local profile: %w", err)
	}
	return nil
}

// FetchProfile loads the stored profile for an email address.
func (r *LocalRepository) FetchProfile(ctx context.Context, email string) (*model.UserProfile, error) {
	record, err := r.getRecord(email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, model.ErrProfileNotFound
	}
	return record.toProfile(), nil
}

// InsertProfile creates the record unless one already exists; the password
// hash of an existing record must survive profile self-healing.
func (r *LocalRepository) InsertProfile(ctx context.Context, profile *model.UserProfile) error {
	existing, err := r.getRecord(profile.Email)
	if err != nil {
		return err
	}
	record := recordFromProfile(profile)
	record.UpdatedAt = time.Now().UTC()
	if existing != nil {
		record.PasswordHash = existing.PasswordHash
	}
	return r.putRecord(record)
}

// SaveProfile rewrites budget and transactions in one atomic put.
func (r *LocalRepository) SaveProfile(ctx context.Context, email string, budget decimal.Decimal, transactions []model.Transaction) error {
	record, err := r.getRecord(email)
	if err != nil {
		return err
	}
	if record == nil {
		return model.ErrProfileNotFound
	}
	record.Budget = budget
	record.Expenses = transactions
	record.UpdatedAt = time.Now().UTC()
	return r.putRecord(record)
}

// SignIn checks the stored password hash.
func (r *LocalRepository) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	record, err := r.getRecord(email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, model.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
		return nil, model.ErrInvalidCredentials
	}
	return &Identity{
		Email:     record.Email,
		FirstName: record.FirstName,
		LastName:  record.LastName,
	}, nil
}

// SignUp creates the account and its profile in one step. Local accounts
// need no email confirmation.
func (r *LocalRepository) SignUp(ctx context.Context, email, password, firstName, lastName string) (*Identity, bool, error) {
	if len(password) < 6 {
		return nil, false, model.ErrWeakPassword
	}
	existing, err := r.getRecord(email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return nil, false, model.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	record := recordFromProfile(model.NewProfile(email, firstName, lastName))
	record.PasswordHash = string(hash)
	record.UpdatedAt = time.Now().UTC()
	if err := r.putRecord(record); err != nil {
		return nil, false, err
	}
	return &Identity{Email: email, FirstName: firstName, LastName: lastName}, true, nil
}

// ResendVerification is a no-op locally; there is nothing to confirm.
func (r *LocalRepository) ResendVerification(ctx context.Context, email string) error { return nil }

// SignOut is a no-op locally; there is no token to revoke.
func (r *LocalRepository) SignOut(ctx context.Context, accessToken string) error { return nil }
