package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrMockStore = errors.New("mock store error")

// MockUserStore implements UserStore for testing.
type MockUserStore struct {
	Users       map[string]User // keyed by email
	CreateCalls int
	FailCreate  bool
	FailLookup  bool
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{Users: map[string]User{}}
}

func (m *MockUserStore) ByEmail(_ context.Context, email string) (User, error) {
	if m.FailLookup {
		return User{}, ErrMockStore
	}
	u, ok := m.Users[email]
	if !ok {
		return User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *MockUserStore) Create(_ context.Context, u *User) error {
	m.CreateCalls++
	if m.FailCreate {
		return ErrMockStore
	}
	m.Users[u.Email] = *u
	return nil
}

func (m *MockUserStore) List(_ context.Context) ([]User, error) {
	out := make([]User, 0, len(m.Users))
	for _, u := range m.Users {
		out = append(out, u)
	}
	return out, nil
}
