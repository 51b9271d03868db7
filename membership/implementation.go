package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"librastore/store"
)

// ErrTooManyAttempts is returned when the register/login rate limit is
// exhausted.
var ErrTooManyAttempts = errors.New("too many authentication attempts")

// service implements the Service interface.
type service struct {
	store   *store.Store
	limiter *rate.Limiter
}

// NewService creates a new membership service instance.
func NewService(st *store.Store) Service {
	return &service{
		store:   st,
		limiter: rate.NewLimiter(rate.Every(time.Second), 20),
	}
}

// Register creates a new account with role "user". Email uniqueness is
// case-insensitive.
func (s *service) Register(ctx context.Context, email, password, name string) (store.User, error) {
	if !s.limiter.Allow() {
		return store.User{}, ErrTooManyAttempts
	}

	salt, err := NewSalt()
	if err != nil {
		return store.User{}, err
	}

	var created store.User
	err = s.store.Update(ctx, func(state *store.State) error {
		if state.FindUserByEmail(email) != nil {
			return fmt.Errorf("register %s: %w", email, store.ErrDuplicateEmail)
		}
		now := s.store.Now()
		created = store.User{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			Role:         store.RoleUser,
			PasswordHash: HashPassword(password, salt),
			PasswordSalt: EncodeSalt(salt),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		state.Users = append(state.Users, created)
		return nil
	})
	if err != nil {
		return store.User{}, err
	}
	return created.Sanitized(), nil
}

// Login verifies the credentials and returns the matching account. Unknown
// email and wrong password are indistinguishable to the caller, and a failed
// login changes no state.
func (s *service) Login(ctx context.Context, email, password string) (store.User, error) {
	if !s.limiter.Allow() {
		return store.User{}, ErrTooManyAttempts
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		return store.User{}, err
	}

	user := state.FindUserByEmail(email)
	if user == nil {
		return store.User{}, store.ErrInvalidCredentials
	}
	ok, err := VerifyPassword(password, user.PasswordSalt, user.PasswordHash)
	if err != nil {
		return store.User{}, fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		return store.User{}, store.ErrInvalidCredentials
	}
	return user.Sanitized(), nil
}

// GetUser re-reads an account by id, letting a persisted session refresh
// itself against current data.
func (s *service) GetUser(ctx context.Context, id string) (store.User, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return store.User{}, err
	}
	user := state.FindUser(id)
	if user == nil {
		return store.User{}, fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	return user.Sanitized(), nil
}
