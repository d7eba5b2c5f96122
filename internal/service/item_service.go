package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"arenda/internal/database"
	"arenda/internal/domain"
	"arenda/internal/events"
	"arenda/internal/models"

	"github.com/rs/zerolog"
)

// ItemService owns the catalog and the comment subsystem: item CRUD,
// substring search, the detail read model and comment eligibility.
type ItemService struct {
	repo     domain.Repository
	users    *UserService
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, users *UserService, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, users: users, eventBus: eventBus, logger: logger}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, req models.NewItem) (*models.Item, error) {
	if _, err := s.users.RequireExists(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name: %w", database.ErrBlankField)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("description: %w", database.ErrBlankField)
	}
	if req.Available == nil {
		return nil, fmt.Errorf("available: %w", database.ErrBlankField)
	}
	if req.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item listed")
	return item, nil
}

func (s *ItemService) GetByID(ctx context.Context, userID, itemID int64) (*models.ItemDetails, error) {
	if _, err := s.users.RequireExists(ctx, userID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, item)
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]models.ItemDetails, error) {
	if _, err := s.users.RequireExists(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetails, 0, len(items))
	for i := range items {
		d, err := s.loadDetails(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

// Search returns available items matching the text in name or
// description. Blank text yields an empty list, not an error.
func (s *ItemService) Search(ctx context.Context, text string) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	items, err := s.repo.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, update models.UpdateItem) (*models.Item, error) {
	if _, err := s.users.RequireExists(ctx, ownerID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("item %d, user %d: %w", itemID, ownerID, database.ErrNotOwner)
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		item.Name = *update.Name
	}
	if update.Description != nil && strings.TrimSpace(*update.Description) != "" {
		item.Description = *update.Description
	}
	if update.Available != nil {
		item.Available = *update.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AddComment lets a past renter leave feedback. The author must have a
// booking of the item that is APPROVED and already finished.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.RequireExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text: %w", database.ErrBlankField)
	}

	if err := s.validateCommentAuthor(ctx, authorID, itemID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.publishCommentEvent(comment, item.Name)
	return comment, nil
}

func (s *ItemService) validateCommentAuthor(ctx context.Context, authorID, itemID int64) error {
	bookings, err := s.repo.ListBookingsByItem(ctx, itemID)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		return fmt.Errorf("item %d: %w", itemID, database.ErrNoBookings)
	}

	var booking *models.Booking
	for i := range bookings {
		if bookings[i].BookerID == authorID {
			booking = &bookings[i]
			break
		}
	}
	if booking == nil {
		return fmt.Errorf("user %d, item %d: %w", authorID, itemID, database.ErrNotBooker)
	}

	if booking.Status != models.StatusApproved {
		return fmt.Errorf("booking %d: %w", booking.ID, database.ErrNotApproved)
	}
	if !booking.End.Before(time.Now()) {
		return fmt.Errorf("booking %d: %w", booking.ID, database.ErrBookingNotOver)
	}
	return nil
}

// loadDetails builds the item read model: comments plus the last/next
// bookings derived from the owner's bookings sorted by start descending
// (first is next, second is last, the same one when only one exists).
func (s *ItemService) loadDetails(ctx context.Context, item *models.Item) (*models.ItemDetails, error) {
	comments, err := s.repo.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	details := &models.ItemDetails{Item: *item, Comments: comments}

	bookings, err := s.repo.ListBookingsByOwner(ctx, item.OwnerID, models.StateAll, time.Now())
	if err != nil {
		return nil, err
	}
	if len(bookings) > 0 {
		details.NextBooking = &bookings[0]
		if len(bookings) > 1 {
			details.LastBooking = &bookings[1]
		} else {
			details.LastBooking = &bookings[0]
		}
	}

	return details, nil
}

func (s *ItemService) publishCommentEvent(comment *models.Comment, itemName string) {
	if s.eventBus == nil {
		return
	}
	payload := events.CommentEventPayload{
		CommentID:  comment.ID,
		ItemID:     comment.ItemID,
		ItemName:   itemName,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
	}
	if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
		s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
	}
}
