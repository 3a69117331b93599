package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStrategy(t *testing.T) {
	status := "R"
	from := int64(1000)
	to := int64(2000)

	tests := []struct {
		name     string
		filter   ListFilter
		expected listStrategy
	}{
		{"no filters", ListFilter{}, strategyDefault},
		{"status only", ListFilter{StatusID: &status}, strategyStatusOnly},
		{"range only", ListFilter{DateFrom: &from, DateTo: &to}, strategyRangeOnly},
		{"lower bound only", ListFilter{DateFrom: &from}, strategyRangeOnly},
		{"upper bound only", ListFilter{DateTo: &to}, strategyRangeOnly},
		{"status and range", ListFilter{StatusID: &status, DateFrom: &from}, strategyStatusAndRange},
		{"search alone", ListFilter{Search: "hospital"}, strategySearch},
		{"search beats status", ListFilter{Search: "hospital", StatusID: &status}, strategySearch},
		{"search beats range", ListFilter{Search: "hospital", DateFrom: &from, DateTo: &to}, strategySearch},
		{"whitespace search ignored", ListFilter{Search: "   ", StatusID: &status}, strategyStatusOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, selectStrategy(tt.filter))
		})
	}
}

func TestDateBounds(t *testing.T) {
	from := int64(1000)
	to := int64(2000)

	lo, hi := ListFilter{DateFrom: &from, DateTo: &to}.dateBounds()
	assert.Equal(t, from, lo)
	assert.Equal(t, to, hi)

	lo, hi = ListFilter{DateFrom: &from}.dateBounds()
	assert.Equal(t, from, lo)
	assert.Greater(t, hi, to)

	lo, _ = ListFilter{DateTo: &to}.dateBounds()
	assert.Equal(t, int64(0), lo)
}

func TestCursorRoundTrip(t *testing.T) {
	in := pageCursor{Key: 1700000000000, ID: "abc-123"}
	out, ok := decodeCursor(encodeCursor(in))
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, ok := decodeCursor("")
	assert.False(t, ok)

	_, ok = decodeCursor("not base64!!")
	assert.False(t, ok)

	_, ok = decodeCursor("bm90IGpzb24")
	assert.False(t, ok)
}
