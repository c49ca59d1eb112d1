package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "trendradar/internal/errors"
	"trendradar/internal/model"
)

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name          string
		params        CreateUserParams
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			params: CreateUserParams{
				Email:     "new@example.com",
				Password:  "password123",
				FirstName: "New",
				LastName:  "User",
				Role:      model.RoleExternal,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			// role validation happens before the store is touched at all
			name: "invalid role",
			params: CreateUserParams{
				Email:     "new@example.com",
				Password:  "password123",
				FirstName: "New",
				LastName:  "User",
				Role:      model.Role("superuser"),
			},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name: "duplicate email",
			params: CreateUserParams{
				Email:     "taken@example.com",
				Password:  "password123",
				FirstName: "Dup",
				LastName:  "User",
				Role:      model.RoleExternal,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.Create(context.Background(), tt.params)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.params.Email, user.Email)
				assert.True(t, user.IsActive, "active unless explicitly disabled")
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.params.Password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Create_ExplicitlyInactive(t *testing.T) {
	inactive := false

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "off@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	service := NewUserService(mockRepo)
	user, err := service.Create(context.Background(), CreateUserParams{
		Email:     "off@example.com",
		Password:  "password123",
		FirstName: "Off",
		LastName:  "User",
		Role:      model.RoleExternal,
		IsActive:  &inactive,
	})

	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestUserService_Update_PartialFields(t *testing.T) {
	firstName := "Renamed"
	existing := &model.User{ID: 3, Email: "u@example.com", FirstName: "Old", LastName: "User", Role: model.RoleExternal}
	updated := &model.User{ID: 3, Email: "u@example.com", FirstName: "Renamed", LastName: "User", Role: model.RoleExternal}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil).Once()
	// only the supplied column reaches the store
	mockRepo.On("UpdateFields", mock.Anything, uint(3), map[string]interface{}{"first_name": "Renamed"}).Return(nil)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(updated, nil).Once()

	service := NewUserService(mockRepo)
	user, err := service.Update(context.Background(), 3, UpdateUserParams{FirstName: &firstName})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.FirstName)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_PasswordRehashed(t *testing.T) {
	password := "new-secret"
	existing := &model.User{ID: 3, Email: "u@example.com"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
	mockRepo.On("UpdateFields", mock.Anything, uint(3), mock.MatchedBy(func(fields map[string]interface{}) bool {
		hash, ok := fields["password_hash"].(string)
		if !ok {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	})).Return(nil)

	service := NewUserService(mockRepo)
	_, err := service.Update(context.Background(), 3, UpdateUserParams{Password: &password})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	role := model.Role("superuser")

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3}, nil)

	service := NewUserService(mockRepo)
	_, err := service.Update(context.Background(), 3, UpdateUserParams{Role: &role})

	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockRepo)
	_, err := service.Update(context.Background(), 404, UpdateUserParams{})

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3}, nil)
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

	service := NewUserService(mockRepo)
	assert.NoError(t, service.Delete(context.Background(), 3))
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockRepo)
	assert.ErrorIs(t, service.Delete(context.Background(), 404), apperrors.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
