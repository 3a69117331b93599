// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"time"

	"foms/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// MockCountPerStatus is the number of synthetic requests generated per
// catalog status by the mock seeding operation.
const MockCountPerStatus = 5

var mockRequestorNames = []string{
	"Jane Smith",
	"Marcus Chen",
	"Elena Rodriguez",
	"David Park",
	"Sarah Williams",
}

var mockOrgs = []string{
	"North Valley EMS",
	"Metro Fire Rescue",
	"County Emergency Services",
	"Rural Health Coalition",
	"City Fire Dept",
}

var mockFacilities = []string{
	"Memorial Hospital ER",
	"Valley Medical Center",
	"Central Trauma Unit",
	"Westside Urgent Care",
	"Regional Health ER",
}

var mockDescriptions = []string{
	"After-hours facility access for equipment pickup",
	"Scheduled training session in main bay",
	"Emergency drill coordination",
	"Quarterly inspection and maintenance",
	"Night shift handoff and supply restock",
}

var mockContacts = []string{
	"Dr. Amy Foster",
	"Nurse James Lee",
	"Ops Manager Kate Brown",
	"Shift Lead Tom Davis",
	"Admin Maria Garcia",
}

var mockDenialReasons = []string{
	"Insufficient documentation provided.",
	"Requested time slot not available.",
	"Facility at capacity for that date.",
	"Required approval from medical director missing.",
	"Duplicate request on file.",
}

var mockDFLCodes = []*string{strPtr("DFL-100"), strPtr("DFL-101"), nil, strPtr("DFL-102"), nil}

const mockPhone = "(555) 123-4567"

func strPtr(s string) *string { return &s }

// Options controls how mock requests are generated. Deterministic mode
// cycles through the fixed tables above; otherwise gofakeit fills the
// textual fields with random content.
type Options struct {
	Deterministic bool
}

// Factory builds synthetic request entities.
type Factory struct {
	opts Options
}

// NewFactory creates a new Factory.
func NewFactory(opts Options) *Factory {
	if !opts.Deterministic {
		gofakeit.Seed(time.Now().UnixNano())
	}
	return &Factory{opts: opts}
}

// BuildMockRequest constructs one synthetic request in the given status.
// index spreads the timestamps so listings have a stable, distinct order;
// now is the reference time in epoch milliseconds.
func (f *Factory) BuildMockRequest(statusID string, index int, now int64) *models.Request {
	i := index % len(mockRequestorNames)

	req := &models.Request{
		CreateDatetime:    now - int64(index)*60_000,
		RequestedDatetime: now - int64(index+int(statusID[0]))*3_600_000,
		RequestorName:     mockRequestorNames[i],
		RequestorOrg:      mockOrgs[i],
		RequestorPhone:    mockPhone,
		Facility:          mockFacilities[i],
		Description:       mockDescriptions[i],
		Contact:           mockContacts[i],
		PocPhone:          mockPhone,
		StatusID:          statusID,
		DFLCode:           mockDFLCodes[i],
	}

	if !f.opts.Deterministic {
		req.RequestorName = gofakeit.Name()
		req.RequestorOrg = gofakeit.Company()
		req.RequestorPhone = gofakeit.Phone()
		req.Facility = gofakeit.Company() + " " + gofakeit.NounAbstract()
		req.Description = gofakeit.Sentence(8)
		req.Contact = gofakeit.Name()
		req.PocPhone = gofakeit.Phone()
	}

	if index%2 == 0 {
		req.Restoration = strPtr("Yes")
	} else {
		req.Scheduled = strPtr("No")
	}
	if statusID == models.StatusDenied {
		req.DeniedDescription = strPtr(mockDenialReasons[i])
	}

	req.RefreshSearchText()
	return req
}
