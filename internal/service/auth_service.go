package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const bcryptCost = 10

// AuthService handles signup and signin.
type AuthService interface {
	Signup(ctx context.Context, email, password, role string) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	tx         repository.TxManager
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tx repository.TxManager, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		tx:         tx,
		jwtService: jwtService,
	}
}

// Signup registers a new user and returns a signed token. The duplicate
// email check runs before any hashing or token work so a taken address
// costs nothing and persists nothing.
func (s *authService) Signup(ctx context.Context, email, password, role string) (string, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("check email existence: %w", err)
	}
	if exists {
		return "", apperrors.NewInvalidRequest("email %s is already registered", email)
	}

	userRole, err := model.ParseUserRole(role)
	if err != nil {
		return "", apperrors.NewInvalidRequest("invalid user role: %s", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         userRole,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.CreateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return token, nil
}

// Signin authenticates by email and password and returns a signed token.
func (s *authService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.NewInvalidRequest("no user registered with email %s", email)
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidPassword
	}

	token, err := s.jwtService.CreateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return token, nil
}
