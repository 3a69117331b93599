package repository

import (
	"context"
	"errors"

	"foms/internal/models"
	"foms/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuthGateRepository defines the interface for per-route auth settings.
type AuthGateRepository interface {
	// Get reports whether the route requires auth. Routes without an
	// explicit row default to true (fail secure).
	Get(ctx context.Context, routePath string) (bool, error)
	Set(ctx context.Context, routePath string, requireAuth bool) error
	List(ctx context.Context) ([]models.AuthSetting, error)
}

type authGateRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewAuthGateRepository creates a new auth-gate settings repository
func NewAuthGateRepository(db *gorm.DB) AuthGateRepository {
	return &authGateRepository{db: db, log: observability.NewRepoLogger("auth_settings")}
}

func (r *authGateRepository) Get(ctx context.Context, routePath string) (bool, error) {
	defer observability.TrackQuery("read", "auth_settings")()
	var row models.AuthSetting
	err := r.db.WithContext(ctx).First(&row, "route_path = ?", routePath).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		r.log.LogError(ctx, err, "read")
		return true, err
	}
	return row.RequireAuth, nil
}

func (r *authGateRepository) Set(ctx context.Context, routePath string, requireAuth bool) error {
	defer observability.TrackQuery("update", "auth_settings")()
	row := models.AuthSetting{RoutePath: routePath, RequireAuth: requireAuth}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "route_path"}},
			DoUpdates: clause.AssignmentColumns([]string{"require_auth"}),
		}).
		Create(&row).Error
	if err != nil {
		r.log.LogError(ctx, err, "update")
		return err
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"route_path": routePath, "require_auth": requireAuth})
	return nil
}

func (r *authGateRepository) List(ctx context.Context) ([]models.AuthSetting, error) {
	defer observability.TrackQuery("read", "auth_settings")()
	var rows []models.AuthSetting
	if err := r.db.WithContext(ctx).Order("route_path").Find(&rows).Error; err != nil {
		r.log.LogError(ctx, err, "read")
		return nil, err
	}
	return rows, nil
}
