package identity

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type memoryUser struct {
	identity models.Identity
	hash     []byte
}

// Memory is an in-process Provider for local runs and tests.
// Passwords are kept as bcrypt hashes.
type Memory struct {
	mu    sync.RWMutex
	users map[string]*memoryUser
	cost  int
	now   func() time.Time
}

func NewMemory(cost int) *Memory {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &Memory{
		users: map[string]*memoryUser{},
		cost:  cost,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) CreateUser(_ context.Context, email, password string) (*models.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.identity.Email == email {
			return nil, fmt.Errorf("%w: a user with this email address has already been registered", utils.ErrConflict)
		}
	}
	now := m.now()
	u := &memoryUser{
		identity: models.Identity{
			ID:               uuid.NewString(),
			Email:            email,
			EmailConfirmedAt: &now,
			CreatedAt:        now,
		},
		hash: hash,
	}
	m.users[u.identity.ID] = u
	out := u.identity
	return &out, nil
}

func (m *Memory) UpdatePassword(_ context.Context, id, password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return utils.ErrNotFound
	}
	u.hash = hash
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return utils.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Identity, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u.identity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Authenticate checks a password and records the sign-in time. It is not part
// of Provider: tokens are always issued by the auth service, so only tests and
// local tooling use it to check a credential change.
func (m *Memory) Authenticate(_ context.Context, email, password string) (*models.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.identity.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
			return nil, fmt.Errorf("invalid login credentials")
		}
		now := m.now()
		u.identity.LastSignInAt = &now
		out := u.identity
		return &out, nil
	}
	return nil, fmt.Errorf("invalid login credentials")
}
