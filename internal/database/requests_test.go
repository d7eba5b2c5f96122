package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"arenda/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requestor := createTestUser(t, db, "Requestor", "req@example.com")

	request := &models.Request{RequestorID: requestor.ID, Description: "Нужна отвертка"}
	require.NoError(t, db.CreateRequest(ctx, request))
	require.NotZero(t, request.ID)
	assert.False(t, request.Created.IsZero())

	found, err := db.GetRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Нужна отвертка", found.Description)
	assert.Equal(t, requestor.ID, found.RequestorID)

	_, err = db.GetRequest(ctx, 9999)
	assert.True(t, errors.Is(err, ErrRequestNotFound))
}

func TestListRequestsByRequestor(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requestor := createTestUser(t, db, "Requestor", "req@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	first := &models.Request{RequestorID: requestor.ID, Description: "first"}
	require.NoError(t, db.CreateRequest(ctx, first))
	second := &models.Request{RequestorID: requestor.ID, Description: "second"}
	require.NoError(t, db.CreateRequest(ctx, second))
	require.NoError(t, db.CreateRequest(ctx, &models.Request{RequestorID: other.ID, Description: "foreign"}))

	requests, err := db.ListRequestsByRequestor(ctx, requestor.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	// Newest first
	assert.Equal(t, second.ID, requests[0].ID)
	assert.Equal(t, first.ID, requests[1].ID)
}

func TestListRequestsPagination(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requestor := createTestUser(t, db, "Requestor", "req@example.com")

	for i := 0; i < 5; i++ {
		require.NoError(t, db.CreateRequest(ctx, &models.Request{
			RequestorID: requestor.ID,
			Description: fmt.Sprintf("request %d", i),
		}))
	}

	page, err := db.ListRequests(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = db.ListRequests(ctx, 4, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, err = db.ListRequests(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}
