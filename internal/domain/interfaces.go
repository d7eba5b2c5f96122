package domain

import (
	"context"
	"time"

	"arenda/internal/models"
)

// Repository is the storage surface the services depend on.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	UserHasData(ctx context.Context, id int64) (bool, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	CountItemsByOwner(ctx context.Context, ownerID int64) (int, error)

	CreateRequest(ctx context.Context, request *models.Request) error
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.Request, error)
	ListRequests(ctx context.Context, offset, limit int) ([]models.Request, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	ListBookingsByBooker(ctx context.Context, bookerID int64, state string, now time.Time) ([]models.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, state string, now time.Time) ([]models.Booking, error)
	ListBookingsByItem(ctx context.Context, itemID int64) ([]models.Booking, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)

	CreateOutboxTask(ctx context.Context, task *models.OutboxTask) error
	GetPendingOutboxTasks(ctx context.Context, limit int) ([]models.OutboxTask, error)
	MarkOutboxTaskDone(ctx context.Context, id int64) error
	MarkOutboxTaskFailed(ctx context.Context, id int64, taskErr string, nextRetryAt time.Time, dead bool) error
}

// EventPublisher publishes domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimitStore counts requests per caller inside a sliding window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Notifier delivers a booking event to an external channel.
type Notifier interface {
	Notify(eventType string, payload []byte) error
}
