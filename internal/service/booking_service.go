package service

import (
	"context"
	"fmt"
	"time"

	"arenda/internal/database"
	"arenda/internal/domain"
	"arenda/internal/events"
	"arenda/internal/metrics"
	"arenda/internal/models"

	"github.com/rs/zerolog"
)

// BookingService drives the booking lifecycle: creation in WAITING,
// the owner's approve/reject decision, and the state-filtered listings.
type BookingService struct {
	repo     domain.Repository
	users    *UserService
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, users *UserService, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, users: users, eventBus: eventBus, logger: logger}
}

func (s *BookingService) Create(ctx context.Context, bookerID int64, req models.NewBooking) (*models.Booking, error) {
	booker, err := s.users.RequireExists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("start/end required: %w", database.ErrInvalidDateRange)
	}
	if !req.End.After(req.Start.Time) {
		return nil, fmt.Errorf("start %s, end %s: %w", req.Start, req.End, database.ErrInvalidDateRange)
	}
	if !item.Available {
		return nil, fmt.Errorf("item %d: %w", item.ID, database.ErrNotAvailable)
	}

	booking := &models.Booking{
		ItemID:     item.ID,
		ItemName:   item.Name,
		BookerID:   bookerID,
		BookerName: booker.Name,
		Start:      req.Start,
		End:        req.End,
		Status:     models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", bookerID).
		Msg("booking created")
	metrics.IncBookingTransition(models.StatusWaiting)
	s.publishBookingEvent(events.EventBookingCreated, booking)

	return booking, nil
}

// UpdateStatus records the owner's decision. Repeated decisions simply
// overwrite the previous one.
func (s *BookingService) UpdateStatus(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error) {
	if _, err := s.users.RequireExists(ctx, ownerID); err != nil {
		return nil, err
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("booking %d, user %d: %w", bookingID, ownerID, database.ErrNotOwner)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", status).
		Msg("booking status updated")
	metrics.IncBookingTransition(status)
	s.publishBookingEvent(eventType, booking)

	return booking, nil
}

// GetByID reveals a booking only to its booker or the item's owner;
// everyone else sees not found.
func (s *BookingService) GetByID(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	if _, err := s.users.RequireExists(ctx, userID); err != nil {
		return nil, err
	}
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != userID && item.OwnerID != userID {
		return nil, fmt.Errorf("booking %d, user %d: %w", bookingID, userID, database.ErrBookingNotFound)
	}
	return booking, nil
}

func (s *BookingService) ListByBooker(ctx context.Context, bookerID int64, state string) ([]models.Booking, error) {
	state, err := s.normalizeState(state)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.RequireExists(ctx, bookerID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.ListBookingsByBooker(ctx, bookerID, state, time.Now())
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// ListByOwner requires the caller to own at least one item.
func (s *BookingService) ListByOwner(ctx context.Context, ownerID int64, state string) ([]models.Booking, error) {
	state, err := s.normalizeState(state)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.RequireExists(ctx, ownerID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("user %d: %w", ownerID, database.ErrNoItems)
	}

	bookings, err := s.repo.ListBookingsByOwner(ctx, ownerID, state, time.Now())
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) normalizeState(state string) (string, error) {
	if state == "" {
		return models.StateAll, nil
	}
	if !models.KnownState(state) {
		return "", fmt.Errorf("state %s: %w", state, database.ErrUnknownState)
	}
	return state, nil
}

func (s *BookingService) publishBookingEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		ItemID:     booking.ItemID,
		ItemName:   booking.ItemName,
		BookerID:   booking.BookerID,
		BookerName: booking.BookerName,
		Status:     booking.Status,
		Start:      booking.Start,
		End:        booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
