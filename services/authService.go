package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"foodiehub/helpers"
	"foodiehub/models"
	"foodiehub/store"
)

// AuthService registers users, verifies credentials and issues session
// tokens. Passwords are stored only as bcrypt digests.
type AuthService struct {
	users  store.Users
	tokens *helpers.TokenMaker
}

func NewAuthService(users store.Users, tokens *helpers.TokenMaker) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a customer account and signs the new user in. The email
// must not already be registered (case-insensitive); store.Users enforces
// that with models.ErrConflict.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	digest, err := HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{
		UserID:    store.NewID(),
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Password:  digest,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      models.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.GenerateToken(user.UserID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password both fail with the same models.ErrUnauthorized so callers
// cannot enumerate registered addresses.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
		}
		return "", err
	}
	if !VerifyPassword(req.Password, user.Password) {
		return "", fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}
	return s.tokens.GenerateToken(user.UserID, user.Role)
}

// Profile returns the caller's own record. Admins may pass another user's
// id; everyone else gets their own regardless of the argument.
func (s *AuthService) Profile(ctx context.Context, identity models.Identity, userID string) (*models.User, error) {
	if userID == "" || !identity.IsAdmin() {
		userID = identity.UserID
	}
	return s.users.FindByID(ctx, userID)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(bytes), nil
}

func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
