package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"myduka.app/pos/internal/shared/apperr"
)

// UserStore is the credential store the service runs against.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u *User) error
	List(ctx context.Context) ([]User, error)
}

type Service struct {
	store UserStore
}

func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Register creates a new user or fails with a 400 when the email is taken.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.store.ByEmail(ctx, email); err == nil {
		return User{}, apperr.InvalidErr("email already registered", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, apperr.Wrap(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, apperr.Wrap(err)
	}

	u := User{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.store.Create(ctx, &u); err != nil {
		if IsDuplicateKey(err) {
			// lost the race against a concurrent register for the same email
			return User{}, apperr.InvalidErr("email already registered", nil)
		}
		return User{}, apperr.Wrap(err)
	}
	return u, nil
}

// Authenticate verifies credentials. Unknown email and wrong password return the
// same error so the endpoint cannot be used to enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, apperr.UnauthorizedErr("invalid email or password")
		}
		return User{}, apperr.Wrap(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, apperr.UnauthorizedErr("invalid email or password")
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return users, nil
}
