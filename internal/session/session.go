// Package session tracks the authenticated user. Authentication is
// deliberately mock-grade: any non-empty credentials log in, and the role is
// derived from the email unless the account signed up with one. The active
// user is persisted under session:user so a restart restores the session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"agriconnect/internal/domain"
	"agriconnect/internal/kv"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession indicates an operation that needs a logged-in user.
	ErrNoSession = errors.New("no active session")
)

const sessionKey = "session:user"

func credentialsKey(email string) string { return "credentials:" + email }
func accountKey(email string) string     { return "account:" + email }

// Accessor is the read-only view stores use to gate mutations.
type Accessor interface {
	Current() (domain.User, bool)
}

// Manager owns the active session and the stored accounts.
type Manager struct {
	mu    sync.RWMutex
	store kv.Store
	user  *domain.User
}

func NewManager(store kv.Store) *Manager {
	return &Manager{store: store}
}

// Restore loads a previously persisted session, if any.
func (m *Manager) Restore(ctx context.Context) error {
	raw, err := m.store.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return nil
}

// Current returns the logged-in user, if any.
func (m *Manager) Current() (domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return domain.User{}, false
	}
	return *m.user, true
}

// Login authenticates email/password and makes the account the active
// session. Unknown emails are accepted with a synthesized account, matching
// the demo behavior; known emails must present the password they signed up
// with.
func (m *Manager) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	hash, err := m.store.Get(ctx, credentialsKey(email))
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
			return domain.User{}, ErrInvalidCredentials
		}
	case errors.Is(err, kv.ErrNotFound):
		// no stored account, accept any password
	default:
		return domain.User{}, fmt.Errorf("load credentials: %w", err)
	}

	user, err := m.loadOrSynthesize(ctx, email)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.activate(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Signup registers an account and logs it in.
func (m *Manager) Signup(ctx context.Context, email, password, name string, role domain.UserRole) (domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if role != domain.RoleFarmer && role != domain.RoleRetailer {
		return domain.User{}, fmt.Errorf("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.store.Set(ctx, credentialsKey(email), hash); err != nil {
		return domain.User{}, fmt.Errorf("store credentials: %w", err)
	}

	user := domain.User{
		ID:    "user-" + uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Email: email,
		Role:  role,
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.store.Set(ctx, accountKey(email), raw); err != nil {
		return domain.User{}, fmt.Errorf("store account: %w", err)
	}
	if err := m.activate(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Logout clears the active session. Calling it without a session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return m.store.Delete(ctx, sessionKey)
}

func (m *Manager) loadOrSynthesize(ctx context.Context, email string) (domain.User, error) {
	raw, err := m.store.Get(ctx, accountKey(email))
	if err == nil {
		var user domain.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return domain.User{}, fmt.Errorf("decode account: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return domain.User{}, fmt.Errorf("load account: %w", err)
	}

	role := domain.RoleRetailer
	if strings.Contains(email, "farmer") {
		role = domain.RoleFarmer
	}
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	user := domain.User{
		ID:    "user-" + uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	raw, err = json.Marshal(user)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.store.Set(ctx, accountKey(email), raw); err != nil {
		return domain.User{}, fmt.Errorf("store account: %w", err)
	}
	return user, nil
}

func (m *Manager) activate(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()
	return nil
}
