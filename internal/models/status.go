package models

// Status maps a short status code to its display label. Rows are seeded once
// and read-only afterwards.
type Status struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	StatusID string `gorm:"size:1;not null;uniqueIndex" json:"status_id"`
	Value    string `gorm:"size:40;not null" json:"value"`
}

// DefaultStatuses is the fixed catalog the seed operation installs.
func DefaultStatuses() []Status {
	return []Status{
		{StatusID: StatusRequested, Value: "Requested"},
		{StatusID: StatusDenied, Value: "Denied"},
		{StatusID: StatusCancelled, Value: "Cancelled"},
		{StatusID: StatusApproved, Value: "Approved"},
	}
}
