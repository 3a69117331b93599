package repository

import (
	"context"

	"foms/internal/cache"
	"foms/internal/models"
	"foms/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatusRepository defines the interface for status catalog operations.
type StatusRepository interface {
	List(ctx context.Context) ([]models.Status, error)
	Seed(ctx context.Context) error
}

type statusRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewStatusRepository creates a new status catalog repository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db, log: observability.NewRepoLogger("statuses")}
}

func (r *statusRepository) List(ctx context.Context) ([]models.Status, error) {
	defer observability.TrackQuery("read", "statuses")()
	var rows []models.Status
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		r.log.LogError(ctx, err, "read")
		return nil, err
	}
	return rows, nil
}

// Seed installs the fixed catalog rows. Idempotent by status_id: the
// insert-if-absent is a single ON CONFLICT statement, so concurrent callers
// converge to one row per code.
func (r *statusRepository) Seed(ctx context.Context) error {
	defer observability.TrackQuery("create", "statuses")()
	rows := models.DefaultStatuses()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "status_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	cache.InvalidateStatusCatalog(ctx)
	r.log.LogCreate(ctx, map[string]interface{}{"rows": len(rows)})
	return nil
}
