package database

import (
	"context"
	"errors"
	"testing"

	"arenda/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	user := &models.User{Name: "Ivan", Email: "ivan@example.com"}

	// Create
	err := db.CreateUser(ctx, user)
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	// Get
	found, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan", found.Name)
	assert.Equal(t, "ivan@example.com", found.Email)

	// Update
	found.Name = "Ivan Petrov"
	err = db.UpdateUser(ctx, found)
	require.NoError(t, err)

	found, _ = db.GetUser(ctx, user.ID)
	assert.Equal(t, "Ivan Petrov", found.Name)

	// List
	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	// Delete
	err = db.DeleteUser(ctx, user.ID)
	require.NoError(t, err)

	_, err = db.GetUser(ctx, user.ID)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestGetUserByEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "A", Email: "a@example.com"}))

	found, err := db.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "A", found.Name)

	// Missing email is not an error
	missing, err := db.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserHasData(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	owner := &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))

	hasData, err := db.UserHasData(ctx, owner.ID)
	require.NoError(t, err)
	assert.False(t, hasData)

	item := &models.Item{OwnerID: owner.ID, Name: "Drill", Description: "Cordless", Available: true}
	require.NoError(t, db.CreateItem(ctx, item))

	hasData, err = db.UserHasData(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, hasData)
}
