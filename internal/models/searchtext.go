package models

import "strings"

// searchFields returns the search-contributing field values in their fixed
// order: required text fields first, then the optionals.
func (r *Request) searchFields() []string {
	fields := []string{
		r.RequestorName,
		r.RequestorOrg,
		r.RequestorPhone,
		r.Facility,
		r.Description,
		r.Contact,
	}
	for _, opt := range []*string{r.DFLCode, r.Restoration, r.Scheduled, r.DeniedDescription} {
		if opt != nil {
			fields = append(fields, *opt)
		}
	}
	return fields
}

// SearchDocument derives the search blob for the request's current field
// values: blank fields are dropped and the rest joined with single spaces.
// Deterministic and idempotent for identical inputs.
func (r *Request) SearchDocument() string {
	fields := r.searchFields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// RefreshSearchText overwrites the stored search blob from the current field
// values. Every write path that touches a contributing field must call this
// before persisting so the blob never goes stale past the mutation.
func (r *Request) RefreshSearchText() {
	r.SearchText = r.SearchDocument()
}
