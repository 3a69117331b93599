package service

import (
	"context"

	"foms/internal/models"
	"foms/internal/repository"
)

// AuthGateState is the derived view over the auth settings used to route
// unauthenticated visitors. DefaultPublicRoute is set only when exactly one
// path is public; zero or several public paths leave it nil.
type AuthGateState struct {
	DefaultPublicRoute *string  `json:"default_public_route"`
	PublicRoutePaths   []string `json:"public_route_paths"`
}

// AuthGateService exposes the per-route auth toggle operations.
type AuthGateService struct {
	settings repository.AuthGateRepository
}

// NewAuthGateService creates an AuthGateService.
func NewAuthGateService(settings repository.AuthGateRepository) *AuthGateService {
	return &AuthGateService{settings: settings}
}

// RequiresAuth reports whether the route requires sign-in; routes without an
// explicit setting default to true.
func (s *AuthGateService) RequiresAuth(ctx context.Context, routePath string) (bool, error) {
	return s.settings.Get(ctx, routePath)
}

// Set upserts the auth requirement for a route.
func (s *AuthGateService) Set(ctx context.Context, routePath string, requireAuth bool) error {
	return s.settings.Set(ctx, routePath, requireAuth)
}

// List returns every stored setting.
func (s *AuthGateService) List(ctx context.Context) ([]models.AuthSetting, error) {
	return s.settings.List(ctx)
}

// PublicState collects the explicitly public paths and designates a default
// public route only when the choice is unambiguous.
func (s *AuthGateService) PublicState(ctx context.Context) (*AuthGateState, error) {
	rows, err := s.settings.List(ctx)
	if err != nil {
		return nil, err
	}

	publicPaths := make([]string, 0)
	for _, row := range rows {
		if !row.RequireAuth {
			publicPaths = append(publicPaths, row.RoutePath)
		}
	}

	state := &AuthGateState{PublicRoutePaths: publicPaths}
	if len(publicPaths) == 1 {
		state.DefaultPublicRoute = &publicPaths[0]
	}
	return state, nil
}
