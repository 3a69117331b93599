// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"foms/internal/models"
	"foms/internal/observability"

	"gorm.io/gorm"
)

const defaultPageSize = 20

// RequestRepository defines the interface for request data operations.
type RequestRepository interface {
	Create(ctx context.Context, req *models.Request) error
	GetByID(ctx context.Context, id string) (*models.Request, error)
	List(ctx context.Context, filter ListFilter, page PageRequest) (*Page, error)
	UpdateStatus(ctx context.Context, req *models.Request) error
}

// requestRepository implements RequestRepository
type requestRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db, log: observability.NewRepoLogger("requests")}
}

func (r *requestRepository) Create(ctx context.Context, req *models.Request) error {
	defer observability.TrackQuery("create", "requests")()
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": req.ID, "status_id": req.StatusID})
	return nil
}

// GetByID returns (nil, nil) when no row exists; absence is a normal,
// representable outcome for a plain fetch.
func (r *requestRepository) GetByID(ctx context.Context, id string) (*models.Request, error) {
	defer observability.TrackQuery("read", "requests")()
	var req models.Request
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.LogError(ctx, err, "read")
		return nil, err
	}
	return &req, nil
}

// List serves one page of requests for the given filter. The retrieval
// strategy is chosen by selectStrategy; all paths order descending by their
// sort column with the id as tiebreak, continued via keyset cursor.
func (r *requestRepository) List(ctx context.Context, filter ListFilter, page PageRequest) (*Page, error) {
	strategy := selectStrategy(filter)
	observability.ListStrategyTotal.WithLabelValues(strategy.String()).Inc()
	defer observability.TrackQuery("list", "requests")()

	limit := page.NumItems
	if limit <= 0 {
		limit = defaultPageSize
	}

	q := r.db.WithContext(ctx).Model(&models.Request{})
	sortCol := "create_datetime"

	switch strategy {
	case strategySearch:
		q = r.applySearch(q, strings.TrimSpace(filter.Search))
		if filter.StatusID != nil {
			q = q.Where("status_id = ?", *filter.StatusID)
		}
	case strategyStatusAndRange:
		from, to := filter.dateBounds()
		sortCol = "requested_datetime"
		q = q.Where("status_id = ?", *filter.StatusID).
			Where("requested_datetime >= ? AND requested_datetime <= ?", from, to)
	case strategyStatusOnly:
		sortCol = "requested_datetime"
		q = q.Where("status_id = ?", *filter.StatusID)
	case strategyRangeOnly:
		from, to := filter.dateBounds()
		sortCol = "requested_datetime"
		q = q.Where("requested_datetime >= ? AND requested_datetime <= ?", from, to)
	}

	if cur, ok := decodeCursor(page.Cursor); ok {
		q = q.Where(sortCol+" < ? OR ("+sortCol+" = ? AND id < ?)", cur.Key, cur.Key, cur.ID)
	}

	var items []*models.Request
	if err := q.Order(sortCol + " DESC, id DESC").Limit(limit + 1).Find(&items).Error; err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, err
	}

	isDone := true
	if len(items) > limit {
		items = items[:limit]
		isDone = false
	}
	out := &Page{Items: items, IsDone: isDone}
	if !isDone && len(items) > 0 {
		last := items[len(items)-1]
		key := last.CreateDatetime
		if sortCol == "requested_datetime" {
			key = last.RequestedDatetime
		}
		out.ContinueCursor = encodeCursor(pageCursor{Key: key, ID: last.ID})
	}
	return out, nil
}

// applySearch matches the search blob. Relevance ordering of the original
// search engine is out of scope; results fall back to recency order.
func (r *requestRepository) applySearch(q *gorm.DB, term string) *gorm.DB {
	like := "%" + term + "%"
	if r.db.Dialector.Name() == "postgres" {
		return q.Where("search_text ILIKE ?", like)
	}
	return q.Where("LOWER(search_text) LIKE LOWER(?)", like)
}

// UpdateStatus patches exactly the transition-owned columns of one row.
// CreateDatetime and the caller-supplied fields are never touched here.
func (r *requestRepository) UpdateStatus(ctx context.Context, req *models.Request) error {
	defer observability.TrackQuery("update", "requests")()
	err := r.db.WithContext(ctx).Model(&models.Request{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"status_id":          req.StatusID,
			"denied_description": req.DeniedDescription,
			"search_text":        req.SearchText,
		}).Error
	if err != nil {
		r.log.LogError(ctx, err, "update")
		return err
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": req.ID, "status_id": req.StatusID})
	return nil
}
