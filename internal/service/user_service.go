package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"goaltrack/internal/auth"
	"goaltrack/internal/domain"
	"goaltrack/internal/repository"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// UserService covers the account lifecycle: registration, login and lookup.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, login, password string) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	// The store's unique constraints are the only duplicate check; a lookup
	// here would race with a concurrent registration.
	if err := s.users.Create(ctx, user); err != nil {
		var conflict *repository.ConflictError
		if errors.As(err, &conflict) {
			if conflict.Field == repository.ConflictFieldEmail {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: sanitizeUser(user), Token: token}, nil
}

func (s *userService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	login = strings.TrimSpace(login)
	password = strings.TrimSpace(password)
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: sanitizeUser(user), Token: token}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func validateRegistration(username, email, password string) error {
	ve := &ValidationError{}

	switch {
	case username == "":
		ve.add("username", "Username is required")
	case len(username) < 3:
		ve.add("username", "Username must be at least 3 characters long")
	case len(username) > 50:
		ve.add("username", "Username must be at most 50 characters long")
	case !usernamePattern.MatchString(username):
		ve.add("username", "Username may only contain letters, numbers, and underscores")
	}

	switch {
	case email == "":
		ve.add("email", "Email is required")
	case !emailPattern.MatchString(email):
		ve.add("email", "Email must be a valid email address")
	}

	switch {
	case password == "":
		ve.add("password", "Password is required")
	case len(password) < 8:
		ve.add("password", "Password must be at least 8 characters long")
	}

	return ve.orNil()
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
