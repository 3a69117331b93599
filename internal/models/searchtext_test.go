package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchDocument_FieldOrder(t *testing.T) {
	dfl := "DFL-100"
	req := Request{
		RequestorName:  "Jane Doe",
		RequestorOrg:   "North Valley EMS",
		RequestorPhone: "(555) 123-4567",
		Facility:       "Memorial Hospital ER",
		Description:    "After-hours access",
		Contact:        "Dr. Amy Foster",
		DFLCode:        &dfl,
	}

	assert.Equal(t,
		"Jane Doe North Valley EMS (555) 123-4567 Memorial Hospital ER After-hours access Dr. Amy Foster DFL-100",
		req.SearchDocument())
}

func TestSearchDocument_DropsBlankFields(t *testing.T) {
	req := Request{
		RequestorName: "Jane Doe",
		Facility:      "Memorial Hospital ER",
	}

	assert.Equal(t, "Jane Doe Memorial Hospital ER", req.SearchDocument())
}

func TestSearchDocument_Idempotent(t *testing.T) {
	reason := "Missing paperwork"
	req := Request{
		RequestorName:     "Jane Doe",
		DeniedDescription: &reason,
	}

	first := req.SearchDocument()
	assert.Equal(t, first, req.SearchDocument())
}

func TestRefreshSearchText_TracksMutations(t *testing.T) {
	req := Request{RequestorName: "Jane Doe"}
	req.RefreshSearchText()
	assert.Equal(t, "Jane Doe", req.SearchText)

	reason := "Missing paperwork"
	req.DeniedDescription = &reason
	req.RefreshSearchText()
	assert.Equal(t, "Jane Doe Missing paperwork", req.SearchText)
}

func TestKnownStatusID(t *testing.T) {
	for _, code := range []string{StatusRequested, StatusApproved, StatusDenied, StatusCancelled} {
		assert.True(t, KnownStatusID(code), code)
	}
	assert.False(t, KnownStatusID("X"))
	assert.False(t, KnownStatusID(""))
	assert.False(t, KnownStatusID("r"))
}

func TestDefaultStatuses_FreshSlice(t *testing.T) {
	first := DefaultStatuses()
	first[0].Value = "mutated"

	second := DefaultStatuses()
	assert.NotEqual(t, "mutated", second[0].Value)
	assert.Len(t, second, 4)
}
