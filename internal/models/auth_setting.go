package models

// AuthSetting records whether a UI route requires sign-in to view. Routes
// without a row default to requiring auth.
type AuthSetting struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	RoutePath   string `gorm:"size:200;not null;uniqueIndex" json:"route_path"`
	RequireAuth bool   `gorm:"not null" json:"require_auth"`
}
