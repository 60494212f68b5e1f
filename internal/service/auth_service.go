package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"todoapp/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores bytes past 72
const maxPasswordLen = 72

type AuthResult struct {
	Token    string
	UserID   int64
	Username string
}

type AuthService struct {
	users     UserStore
	tokens    *TokenService
	cost      int
	dummyHash []byte
	now       func() time.Time
}

func NewAuthService(users UserStore, tokens *TokenService, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// compared against when the username is unknown so both login failures cost the same
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

	return &AuthService{
		users:     users,
		tokens:    tokens,
		cost:      bcryptCost,
		dummyHash: dummy,
		now:       utcNow,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = normalizeUsername(username)
	email = strings.TrimSpace(email)
	if err := validateCredentials(username, email, password); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	u, err := s.users.GetByUsername(ctx, normalizeUsername(username))
	if errors.Is(err, domain.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return s.issue(u)
}

func (s *AuthService) issue(u *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(u.ID, u.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: u.ID, Username: u.Username}, nil
}

func validateCredentials(username, email, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	case utf8.RuneCountInString(username) > domain.MaxUsernameLen:
		return fmt.Errorf("%w: username must be at most %d characters", domain.ErrValidation, domain.MaxUsernameLen)
	case email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case utf8.RuneCountInString(email) > domain.MaxEmailLen:
		return fmt.Errorf("%w: email must be at most %d characters", domain.ErrValidation, domain.MaxEmailLen)
	case !strings.Contains(email, "@"):
		return fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	case password == "":
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	case len(password) > maxPasswordLen:
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordLen)
	}
	return nil
}

// normalizeUsername is applied on register and login alike, so both look up
// the same stored name.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
