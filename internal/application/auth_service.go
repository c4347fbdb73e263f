package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	repo "github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type AuthService struct {
	Users  repo.UserRepository
	Tokens TokenIssuer
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, tokens TokenIssuer, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &AuthService{Users: users, Tokens: tokens, Logger: logger}
}

type LoginResult struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register stores a new user with a bcrypt hash of password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}
	if len(password) > helpers.MaxPasswordBytes {
		return nil, invalid("password longer than %d bytes", helpers.MaxPasswordBytes)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		s.Logger.WithError(err).WithField("username", username).Error("create user failed")
		return nil, persistence("create user", err)
	}
	return u, nil
}

// Login checks the password and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, invalid("username and password are required")
	}
	u, err := s.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, persistence("get user", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue token failed")
		return nil, err
	}
	return &LoginResult{UserID: u.ID, Name: u.Username, Token: token, ExpiresAt: exp}, nil
}
