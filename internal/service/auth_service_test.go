package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

func newAuthService(userRepo *MockUserRepository) AuthService {
	tx := &stubTxManager{repos: repository.TxRepos{Users: userRepo}}
	return NewAuthService(userRepo, tx, auth.NewJWTService("test-secret"))
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		role        string
		setupMock   func(*MockUserRepository)
		wantInvalid bool
	}{
		{
			name:     "successful signup",
			email:    "test@example.com",
			password: "Password1",
			role:     "USER",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = 1
					}).Return(nil)
			},
		},
		{
			name:     "email already registered",
			email:    "existing@example.com",
			password: "Password1",
			role:     "USER",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByEmail", mock.Anything, "existing@example.com").Return(true, nil)
			},
			wantInvalid: true,
		},
		{
			name:     "invalid role",
			email:    "test@example.com",
			password: "Password1",
			role:     "SUPERUSER",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
			},
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			token, err := newAuthService(mockRepo).Signup(context.Background(), tt.email, tt.password, tt.role)

			if tt.wantInvalid {
				assert.Error(t, err)
				assert.True(t, apperrors.IsInvalidRequest(err))
				assert.Empty(t, token)
				// nothing may be persisted on a rejected signup
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup_TokenCarriesIdentity(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 42
		}).Return(nil)

	jwtService := auth.NewJWTService("test-secret")
	tx := &stubTxManager{repos: repository.TxRepos{Users: mockRepo}}
	service := NewAuthService(mockRepo, tx, jwtService)

	token, err := service.Signup(context.Background(), "test@example.com", "Password1", "admin")
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestAuthService_Signin(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password1"), 10)

	tests := []struct {
		name        string
		email       string
		password    string
		setupMock   func(*MockUserRepository)
		wantErr     error
		wantInvalid bool
	}{
		{
			name:     "successful signin",
			email:    "test@example.com",
			password: "Password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           1,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "Password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantInvalid: true,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "WrongPassword1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           1,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
				}, nil)
			},
			wantErr: apperrors.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			token, err := newAuthService(mockRepo).Signin(context.Background(), tt.email, tt.password)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			case tt.wantInvalid:
				assert.Error(t, err)
				assert.True(t, apperrors.IsInvalidRequest(err))
				assert.Empty(t, token)
			default:
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
