package seed

import (
	"testing"

	"foms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMockRequest_Deterministic(t *testing.T) {
	factory := NewFactory(Options{Deterministic: true})
	now := int64(1_700_000_000_000)

	first := factory.BuildMockRequest(models.StatusRequested, 0, now)
	second := factory.BuildMockRequest(models.StatusRequested, 0, now)
	assert.Equal(t, first.RequestorName, second.RequestorName)
	assert.Equal(t, "Jane Smith", first.RequestorName)
	assert.Equal(t, "(555) 123-4567", first.RequestorPhone)
	assert.Equal(t, now, first.CreateDatetime)
	assert.NotEmpty(t, first.SearchText)
}

func TestBuildMockRequest_TimestampsSpread(t *testing.T) {
	factory := NewFactory(Options{Deterministic: true})
	now := int64(1_700_000_000_000)

	a := factory.BuildMockRequest(models.StatusRequested, 0, now)
	b := factory.BuildMockRequest(models.StatusRequested, 1, now)
	assert.Greater(t, a.CreateDatetime, b.CreateDatetime)
	assert.Greater(t, a.RequestedDatetime, b.RequestedDatetime)
}

func TestBuildMockRequest_DeniedGetsReason(t *testing.T) {
	factory := NewFactory(Options{Deterministic: true})
	now := int64(1_700_000_000_000)

	denied := factory.BuildMockRequest(models.StatusDenied, 0, now)
	require.NotNil(t, denied.DeniedDescription)
	assert.Contains(t, denied.SearchText, *denied.DeniedDescription)

	approved := factory.BuildMockRequest(models.StatusApproved, 0, now)
	assert.Nil(t, approved.DeniedDescription)
}

func TestBuildMockRequest_RestorationAlternates(t *testing.T) {
	factory := NewFactory(Options{Deterministic: true})
	now := int64(1_700_000_000_000)

	even := factory.BuildMockRequest(models.StatusRequested, 0, now)
	require.NotNil(t, even.Restoration)
	assert.Nil(t, even.Scheduled)

	odd := factory.BuildMockRequest(models.StatusRequested, 1, now)
	assert.Nil(t, odd.Restoration)
	require.NotNil(t, odd.Scheduled)
}

func TestBuildMockRequest_Randomized(t *testing.T) {
	factory := NewFactory(Options{Deterministic: false})
	now := int64(1_700_000_000_000)

	req := factory.BuildMockRequest(models.StatusRequested, 0, now)
	assert.NotEmpty(t, req.RequestorName)
	assert.NotEmpty(t, req.Facility)
	assert.Equal(t, models.StatusRequested, req.StatusID)
	assert.NotEmpty(t, req.SearchText)
}
