package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wizspeek/database"
	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountService edits the identity record (name, username, avatar, status).
type AccountService struct {
	users UserStore
}

func NewAccountService(users UserStore) *AccountService {
	return &AccountService{users: users}
}

func (s *AccountService) Get(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

type AccountUpdate struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
}

func (s *AccountService) Update(ctx context.Context, userID primitive.ObjectID, update AccountUpdate) (*models.User, error) {
	fields := bson.M{}
	if update.Name != nil {
		fields["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username must not be empty", ErrInvalidProfile)
		}
		fields["username"] = username
	}
	if update.Avatar != nil {
		fields["avatar"] = *update.Avatar
	}
	if len(fields) == 0 {
		return s.Get(ctx, userID)
	}

	user, err := s.users.UpdateAccount(ctx, userID, fields)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, database.ErrDuplicate):
		return nil, fmt.Errorf("%w: username taken", ErrInvalidProfile)
	}
	return user, err
}

func (s *AccountService) UpdateStatus(ctx context.Context, userID primitive.ObjectID, status string) error {
	err := s.users.UpdateStatus(ctx, userID, status)
	if errors.Is(err, database.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
