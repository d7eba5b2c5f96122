package service

import (
	"context"
	"testing"

	"arenda/internal/database"
	"arenda/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func strPtr(s string) *string { return &s }

func TestUserCreate(t *testing.T) {
	repo := new(mockRepo)
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	repo.On("GetUserByEmail", ctx, "ivan@example.com").Return(nil, nil)
	repo.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(ctx, "Ivan", "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ivan", user.Name)
	repo.AssertExpectations(t)
}

func TestUserCreateBlankFields(t *testing.T) {
	repo := new(mockRepo)
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ", "ivan@example.com")
	assert.ErrorIs(t, err, database.ErrBlankField)

	_, err = svc.Create(ctx, "Ivan", "")
	assert.ErrorIs(t, err, database.ErrBlankField)

	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestUserCreateEmailTaken(t *testing.T) {
	repo := new(mockRepo)
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	repo.On("GetUserByEmail", ctx, "taken@example.com").
		Return(&models.User{ID: 7, Email: "taken@example.com"}, nil)

	_, err := svc.Create(ctx, "Ivan", "taken@example.com")
	assert.ErrorIs(t, err, database.ErrEmailTaken)
}

func TestUserUpdateKeepsOwnEmail(t *testing.T) {
	repo := new(mockRepo)
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	existing := &models.User{ID: 1, Name: "Ivan", Email: "ivan@example.com"}
	repo.On("GetUser", ctx, int64(1)).Return(existing, nil)
	// Same email owned by the same user is not a conflict
	repo.On("GetUserByEmail", ctx, "ivan@example.com").Return(existing, nil)
	repo.On("UpdateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	updated, err := svc.Update(ctx, 1, models.UpdateUser{
		Name:  strPtr("Ivan Petrov"),
		Email: strPtr("ivan@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", updated.Name)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	repo := new(mockRepo)
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	repo.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1, Email: "a@example.com"}, nil)
	repo.On("GetUserByEmail", ctx, "b@example.com").Return(&models.User{ID: 2, Email: "b@example.com"}, nil)

	_, err := svc.Update(ctx, 1, models.UpdateUser{Email: strPtr("b@example.com")})
	assert.ErrorIs(t, err, database.ErrEmailTaken)
}

func TestUserDeleteWithData(t *testing.T) {
	repo := new(mockRepo)
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	repo.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	repo.On("UserHasData", ctx, int64(1)).Return(true, nil)

	err := svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, database.ErrUserHasData)
	repo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestUserDeleteUnknown(t *testing.T) {
	repo := new(mockRepo)
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	repo.On("GetUser", ctx, int64(42)).Return(nil, database.ErrUserNotFound)

	err := svc.Delete(ctx, 42)
	assert.ErrorIs(t, err, database.ErrUserNotFound)
}
