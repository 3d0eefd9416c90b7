package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/cache"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user profile and administration operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
	ChangeUserRole(ctx context.Context, userID uint, role string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	tx       repository.TxManager
	cache    *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(userRepo repository.UserRepository, tx repository.TxManager, cacheClient *cache.Client) UserService {
	return &userService{
		userRepo: userRepo,
		tx:       tx,
		cache:    cacheClient,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser fetches a user, served from cache when possible.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewInvalidRequest("user with id %d not found", id)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ChangePassword replaces the user's password after verifying the old one.
func (s *userService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		user, err := repos.Users.FindByID(ctx, userID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewInvalidRequest("user with id %d not found", userID)
			}
			return fmt.Errorf("find user: %w", err)
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
			return apperrors.NewInvalidRequest("new password must differ from the current password")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
			return apperrors.NewInvalidRequest("wrong password")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}

// ChangeUserRole updates a user's role. Admin only; the gate sits in the
// routing layer.
func (s *userService) ChangeUserRole(ctx context.Context, userID uint, role string) (*model.User, error) {
	newRole, err := model.ParseUserRole(role)
	if err != nil {
		return nil, apperrors.NewInvalidRequest("invalid user role: %s", role)
	}

	var user *model.User
	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		user, err = repos.Users.FindByID(ctx, userID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NewInvalidRequest("user with id %d not found", userID)
			}
			return fmt.Errorf("find user: %w", err)
		}
		user.Role = newRole
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}

// validatePassword enforces the password policy: at least 8 characters
// containing a digit and an uppercase letter.
func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewInvalidRequest("password must be at least 8 characters")
	}
	var hasDigit, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit || !hasUpper {
		return apperrors.NewInvalidRequest("password must contain a digit and an uppercase letter")
	}
	return nil
}
