// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status codes a facility-access request moves through.
const (
	StatusRequested = "R"
	StatusApproved  = "A"
	StatusDenied    = "D"
	StatusCancelled = "C"
)

// KnownStatusID reports whether code is one of the four catalog codes.
func KnownStatusID(code string) bool {
	switch code {
	case StatusRequested, StatusApproved, StatusDenied, StatusCancelled:
		return true
	}
	return false
}

// Request is a facility-access request tracked through its lifecycle.
// The primary key is server-generated and doubles as the externally
// displayed reference number. Timestamps are epoch milliseconds.
type Request struct {
	ID                string  `gorm:"primaryKey;size:36" json:"id"`
	CreateDatetime    int64   `gorm:"not null;index" json:"create_datetime"`
	RequestedDatetime int64   `gorm:"not null;index;index:idx_requests_status_requested,priority:2" json:"requested_datetime"`
	RequestorName     string  `gorm:"size:120;not null" json:"requestor_name"`
	RequestorOrg      string  `gorm:"size:120;not null" json:"requestor_org"`
	RequestorPhone    string  `gorm:"size:40;not null" json:"requestor_phone"`
	Facility          string  `gorm:"size:200;not null" json:"facility"`
	Description       string  `gorm:"type:text;not null" json:"description"`
	Contact           string  `gorm:"size:120;not null" json:"contact"`
	PocPhone          string  `gorm:"size:40;not null" json:"poc_phone"`
	StatusID          string  `gorm:"size:1;not null;index;index:idx_requests_status_requested,priority:1" json:"status_id"`
	DFLCode           *string `gorm:"size:40" json:"dfl_code,omitempty"`
	Restoration       *string `gorm:"size:200" json:"restoration,omitempty"`
	Scheduled         *string `gorm:"size:200" json:"scheduled,omitempty"`
	DeniedDescription *string `gorm:"type:text" json:"denied_description,omitempty"`
	SearchText        string  `gorm:"type:text" json:"search_text"`

	// StatusValue is the resolved display label for StatusID; computed at
	// read time from the status catalog, never persisted.
	StatusValue string `gorm:"-" json:"status_value,omitempty"`
}

// BeforeCreate assigns the reference number and freezes the creation time.
func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreateDatetime == 0 {
		r.CreateDatetime = time.Now().UnixMilli()
	}
	return nil
}
