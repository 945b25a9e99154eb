package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wizspeek/database"
	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users    UserStore
	profiles ProfileStore
	tokens   TokenIssuer
}

func NewAuthService(users UserStore, profiles ProfileStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, profiles: profiles, tokens: tokens}
}

type AuthResult struct {
	Token string
	User  *models.User
}

// Signup creates the account and its default profile, then issues a token.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashed)

	now := time.Now().Unix()
	user := &models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: &hash,
		AuthProvider: "email",
		CreatedAt:    now,
		LastSeen:     now,
		Username:     "user_" + primitive.NewObjectID().Hex()[:8],
		Name:         strings.TrimSpace(name),
		Status:       models.StatusAvailable,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.profiles.Create(ctx, models.NewDefaultProfile(user.ID, now)); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
