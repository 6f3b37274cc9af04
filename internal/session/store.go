package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/zalando/go-keyring"

	"timepro-engine/internal/domain"
	"timepro-engine/internal/storage"
)

const (
	// "Service" groups the engine's secrets in the OS keychain.
	KeyringService = "timepro"
	keyringAccount = "timepro:token"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrBadAuthResponse means the backend's login reply was missing the
	// token, the user, or the role; nothing gets stored in that case.
	ErrBadAuthResponse = errors.New("invalid auth response from backend")
)

// Store is the process-wide session holder: bearer token in the OS keyring
// (kv fallback when no keyring is available), role and the denormalized user
// in the local client-state table.
type Store struct {
	kv *storage.DB

	// flipped after the keyring rejects an operation; from then on the token
	// lives in the kv table alongside role and user. Token() reads it from
	// handler goroutines while Set/Clear write it.
	noKeyring atomic.Bool
}

func NewStore(kv *storage.DB) *Store {
	return &Store{kv: kv}
}

// Set replaces the whole session: everything previously stored is cleared
// before the new triplet is written, so nothing from a prior account can
// leak across a login.
func (s *Store) Set(ctx context.Context, token string, user *domain.User) error {
	if strings.TrimSpace(token) == "" || user == nil || strings.TrimSpace(user.Role) == "" {
		return ErrBadAuthResponse
	}

	if err := s.Clear(ctx); err != nil {
		return err
	}

	if !s.noKeyring.Load() {
		if err := keyring.Set(KeyringService, keyringAccount, token); err != nil {
			s.noKeyring.Store(true)
		}
	}
	if s.noKeyring.Load() {
		if err := s.kv.Set(ctx, storage.KeyToken, token); err != nil {
			return err
		}
	}

	if err := s.kv.Set(ctx, storage.KeyRole, user.Role); err != nil {
		return err
	}
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storage.KeyUser, string(b))
}

// Clear is the logout teardown; it also runs at the start of every login.
func (s *Store) Clear(ctx context.Context) error {
	if !s.noKeyring.Load() {
		err := keyring.Delete(KeyringService, keyringAccount)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			s.noKeyring.Store(true)
		}
	}
	return s.kv.Clear(ctx)
}

// Token implements api.TokenSource. Absent or expired tokens read as
// ErrNotAuthenticated so no malformed request ever leaves the engine.
func (s *Store) Token() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tok := ""
	if !s.noKeyring.Load() {
		if v, err := keyring.Get(KeyringService, keyringAccount); err == nil {
			tok = v
		}
	}
	if tok == "" {
		v, err := s.kv.Get(ctx, storage.KeyToken)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return "", err
		}
		tok = v
	}
	if strings.TrimSpace(tok) == "" {
		return "", ErrNotAuthenticated
	}
	if tokenExpired(tok) {
		return "", ErrNotAuthenticated
	}
	return tok, nil
}

func (s *Store) Role(ctx context.Context) (string, error) {
	v, err := s.kv.Get(ctx, storage.KeyRole)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNotAuthenticated
	}
	return v, err
}

// User returns the denormalized user cached at login. Malformed stored JSON
// reads as not-authenticated rather than failing the caller some other way.
func (s *Store) User(ctx context.Context) (domain.User, error) {
	var u domain.User
	v, err := s.kv.Get(ctx, storage.KeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return u, ErrNotAuthenticated
	}
	if err != nil {
		return u, err
	}
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return u, ErrNotAuthenticated
	}
	return u, nil
}

func (s *Store) Authenticated() bool {
	_, err := s.Token()
	return err == nil
}
