package repository

import (
	"encoding/base64"
	"encoding/json"

	"foms/internal/models"
)

// PageRequest asks for one page of a cursor-paginated listing. An empty
// Cursor starts from the top.
type PageRequest struct {
	Cursor   string
	NumItems int
}

// Page is one slice of a listing. ContinueCursor is opaque to callers and
// only meaningful when IsDone is false.
type Page struct {
	Items          []*models.Request `json:"page"`
	IsDone         bool              `json:"is_done"`
	ContinueCursor string            `json:"continue_cursor"`
}

// pageCursor is the decoded continuation point: the sort-column value and id
// of the last row already returned. Keyset continuation keeps already-read
// rows stable when new rows are inserted concurrently.
type pageCursor struct {
	Key int64  `json:"k"`
	ID  string `json:"id"`
}

func encodeCursor(c pageCursor) string {
	raw, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(s string) (pageCursor, bool) {
	if s == "" {
		return pageCursor{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return pageCursor{}, false
	}
	var c pageCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return pageCursor{}, false
	}
	return c, true
}
