// Package service contains the business operations composed from repositories.
package service

import (
	"context"
	"strings"
	"time"

	"foms/internal/cache"
	"foms/internal/models"
	"foms/internal/notifications"
	"foms/internal/observability"
	"foms/internal/repository"
	"foms/internal/seed"
)

// CreateRequestInput carries the caller-supplied fields of a new request.
type CreateRequestInput struct {
	RequestedDatetime int64
	RequestorName     string
	RequestorOrg      string
	RequestorPhone    string
	Facility          string
	Description       string
	Contact           string
	PocPhone          string
	DFLCode           *string
	Restoration       *string
	Scheduled         *string
}

// RequestPage is one listing page with status labels resolved.
type RequestPage struct {
	Items          []*models.Request `json:"page"`
	IsDone         bool              `json:"is_done"`
	ContinueCursor string            `json:"continue_cursor"`
}

// RequestService implements the request lifecycle operations: create, fetch,
// list, status transition, and mock seeding.
type RequestService struct {
	requests repository.RequestRepository
	statuses repository.StatusRepository
	notifier *notifications.Notifier
	factory  *seed.Factory
}

// NewRequestService creates a RequestService. notifier may be nil; event
// publication is then skipped.
func NewRequestService(requests repository.RequestRepository, statuses repository.StatusRepository, notifier *notifications.Notifier) *RequestService {
	return &RequestService{
		requests: requests,
		statuses: statuses,
		notifier: notifier,
		factory:  seed.NewFactory(seed.Options{Deterministic: true}),
	}
}

// Create inserts a new request in status Requested and returns its
// reference number.
func (s *RequestService) Create(ctx context.Context, in CreateRequestInput) (string, error) {
	req := &models.Request{
		CreateDatetime:    time.Now().UnixMilli(),
		RequestedDatetime: in.RequestedDatetime,
		RequestorName:     in.RequestorName,
		RequestorOrg:      in.RequestorOrg,
		RequestorPhone:    in.RequestorPhone,
		Facility:          in.Facility,
		Description:       in.Description,
		Contact:           in.Contact,
		PocPhone:          in.PocPhone,
		DFLCode:           in.DFLCode,
		Restoration:       in.Restoration,
		Scheduled:         in.Scheduled,
		StatusID:          models.StatusRequested,
	}
	req.RefreshSearchText()

	if err := s.requests.Create(ctx, req); err != nil {
		return "", err
	}

	s.publish(ctx, notifications.EventRequestCreated, req)
	return req.ID, nil
}

// Get returns the request with its status label resolved, or (nil, nil)
// when the id does not exist.
func (s *RequestService) Get(ctx context.Context, id string) (*models.Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil || req == nil {
		return nil, err
	}

	labels, err := s.statusLabels(ctx)
	if err != nil {
		return nil, err
	}
	enrich(req, labels)
	return req, nil
}

// List returns one page of requests matching the filter, each annotated
// with its resolved status label.
func (s *RequestService) List(ctx context.Context, filter repository.ListFilter, page repository.PageRequest) (*RequestPage, error) {
	result, err := s.requests.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	labels, err := s.statusLabels(ctx)
	if err != nil {
		return nil, err
	}
	for _, req := range result.Items {
		enrich(req, labels)
	}

	return &RequestPage{
		Items:          result.Items,
		IsDone:         result.IsDone,
		ContinueCursor: result.ContinueCursor,
	}, nil
}

// UpdateStatus applies an approve/deny/cancel transition. The prior status
// is deliberately not checked; any status can be overwritten.
func (s *RequestService) UpdateStatus(ctx context.Context, identity, id, statusID string, deniedDescription *string) error {
	if identity == "" {
		return models.NewUnauthorizedError("Must be signed in to approve or deny requests")
	}
	if !models.KnownStatusID(statusID) {
		return models.NewValidationError("Unknown status code: " + statusID)
	}

	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return models.NewNotFoundError("request", id)
	}

	if statusID == models.StatusDenied && (deniedDescription == nil || strings.TrimSpace(*deniedDescription) == "") {
		return models.NewValidationError("A denial reason is required when denying a request")
	}

	req.StatusID = statusID
	if deniedDescription != nil {
		reason := strings.TrimSpace(*deniedDescription)
		req.DeniedDescription = &reason
		req.RefreshSearchText()
	}

	if err := s.requests.UpdateStatus(ctx, req); err != nil {
		return err
	}

	observability.StatusTransitionsTotal.WithLabelValues(statusID).Inc()
	s.publish(ctx, notifications.EventRequestStatusChanged, req)
	return nil
}

// SeedMock inserts synthetic requests for every catalog status, seeding the
// catalog itself first when empty. Returns the number of inserted requests.
func (s *RequestService) SeedMock(ctx context.Context, identity string) (int, error) {
	if identity == "" {
		return 0, models.NewUnauthorizedError("Must be signed in to generate mock data")
	}

	statuses, err := s.statuses.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(statuses) == 0 {
		if err := s.statuses.Seed(ctx); err != nil {
			return 0, err
		}
		if statuses, err = s.statuses.List(ctx); err != nil {
			return 0, err
		}
	}

	now := time.Now().UnixMilli()
	inserted := 0
	for _, st := range statuses {
		for i := 0; i < seed.MockCountPerStatus; i++ {
			req := s.factory.BuildMockRequest(st.StatusID, inserted, now)
			if err := s.requests.Create(ctx, req); err != nil {
				return inserted, err
			}
			inserted++
		}
	}
	return inserted, nil
}

// statusLabels returns the code -> label map, cached alongside the catalog.
func (s *RequestService) statusLabels(ctx context.Context) (map[string]string, error) {
	var rows []models.Status
	err := cache.Aside(ctx, cache.StatusCatalogKey, &rows, cache.StatusCatalogTTL, func() error {
		loaded, loadErr := s.statuses.List(ctx)
		if loadErr != nil {
			return loadErr
		}
		rows = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(rows))
	for _, st := range rows {
		labels[st.StatusID] = st.Value
	}
	return labels, nil
}

// enrich resolves the display label; unknown codes fall back to the raw code.
func enrich(req *models.Request, labels map[string]string) {
	if label, ok := labels[req.StatusID]; ok {
		req.StatusValue = label
	} else {
		req.StatusValue = req.StatusID
	}
}

func (s *RequestService) publish(ctx context.Context, eventType string, req *models.Request) {
	_ = s.notifier.PublishRequestEvent(ctx, notifications.RequestEvent{
		Type:      eventType,
		RequestID: req.ID,
		StatusID:  req.StatusID,
		At:        time.Now().UnixMilli(),
	})
}
