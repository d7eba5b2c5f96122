package service

import (
	"context"
	"fmt"
	"strings"

	"arenda/internal/database"
	"arenda/internal/domain"
	"arenda/internal/models"

	"github.com/rs/zerolog"
)

// RequestService manages item-wanted requests and their responses.
type RequestService struct {
	repo   domain.Repository
	users  *UserService
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, users *UserService, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, users: users, logger: logger}
}

func (s *RequestService) Create(ctx context.Context, requestorID int64, description string) (*models.Request, error) {
	if _, err := s.users.RequireExists(ctx, requestorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description: %w", database.ErrBlankField)
	}

	request := &models.Request{
		RequestorID: requestorID,
		Description: description,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requestor_id", requestorID).Msg("request created")
	return request, nil
}

func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (*models.RequestDetails, error) {
	if _, err := s.users.RequireExists(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, request)
}

// ListByRequestor returns the caller's own requests, newest first, each
// with the items offered in response.
func (s *RequestService) ListByRequestor(ctx context.Context, requestorID int64) ([]models.RequestDetails, error) {
	if _, err := s.users.RequireExists(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListRequestsByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.loadDetailsList(ctx, requests)
}

// ListAll pages through other users' requests. from is an element
// offset, size a page size; the returned page starts at the page
// boundary containing from.
func (s *RequestService) ListAll(ctx context.Context, userID int64, from, size *int) ([]models.RequestDetails, error) {
	if _, err := s.users.RequireExists(ctx, userID); err != nil {
		return nil, err
	}

	start := 0
	limit := models.DefaultRequestPageSize
	if from != nil {
		start = *from
	}
	if size != nil {
		limit = *size
	}
	if start < 0 || limit <= 0 {
		return nil, fmt.Errorf("from=%d size=%d: %w", start, limit, database.ErrNegativePage)
	}

	requests, err := s.repo.ListRequests(ctx, (start/limit)*limit, limit)
	if err != nil {
		return nil, err
	}

	return s.loadDetailsList(ctx, requests)
}

func (s *RequestService) loadDetailsList(ctx context.Context, requests []models.Request) ([]models.RequestDetails, error) {
	details := make([]models.RequestDetails, 0, len(requests))
	for i := range requests {
		d, err := s.loadDetails(ctx, &requests[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (s *RequestService) loadDetails(ctx context.Context, request *models.Request) (*models.RequestDetails, error) {
	items, err := s.repo.ListItemsByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return &models.RequestDetails{Request: *request, Items: items}, nil
}
