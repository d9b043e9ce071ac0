package deadlines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/editais-backend/internal/domain/congress"
)

func TestResolveNearest(t *testing.T) {
	dates := &types.EditalDates{
		OpeningDate:         "01/09/2025",
		SubmissionDeadlines: []types.Deadline{{Date: "2025-10-01"}, {Date: "2025-12-19"}},
		ResultsDeadlines:    []types.Deadline{{Date: "2026-01-10"}},
	}
	now := time.Date(2025, time.December, 19, 15, 0, 0, 0, time.UTC)
	got, ok := Resolve(dates, PolicyNearest, now, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "01/09/2025", got.Opening)
	assert.Equal(t, "2025-12-19", got.Submission)
	assert.False(t, got.SubmissionClosed)
	assert.Equal(t, NotInformed, got.Presentation)
	assert.Equal(t, "2026-01-10", got.Results)
	assert.Equal(t, NotInformed, got.Publication)
}

func TestResolveMarksClosed(t *testing.T) {
	dates := &types.EditalDates{SubmissionDeadlines: []types.Deadline{{Date: "2025-10-01"}}}
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	got, _ := Resolve(dates, PolicyPaired, now, time.UTC)
	assert.Equal(t, "2025-10-01", got.Submission)
	assert.True(t, got.SubmissionClosed)
}

func TestResolveNil(t *testing.T) {
	_, ok := Resolve(nil, PolicyNearest, time.Now(), time.UTC)
	assert.False(t, ok)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyNearest, p)
	p, err = ParsePolicy(" Paired ")
	require.NoError(t, err)
	assert.Equal(t, PolicyPaired, p)
	_, err = ParsePolicy("latest")
	assert.Error(t, err)
}

func TestResolveNearestKeepsTodayOpenPastItsTime(t *testing.T) {
	dates := &types.EditalDates{
		SubmissionDeadlines: []types.Deadline{{Date: "2025-12-19", Time: "10:00"}, {Date: "2025-12-26"}},
	}
	now := time.Date(2025, time.December, 19, 15, 0, 0, 0, time.UTC)
	got, ok := Resolve(dates, PolicyNearest, now, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2025-12-19", got.Submission)
	assert.False(t, got.SubmissionClosed)
}

func TestResolveNearestClosedOnlyBeforeToday(t *testing.T) {
	dates := &types.EditalDates{ResultsDeadlines: []types.Deadline{{Date: "2025-12-18", Time: "23:59"}}}
	now := time.Date(2025, time.December, 19, 0, 30, 0, 0, time.UTC)
	got, _ := Resolve(dates, PolicyNearest, now, time.UTC)
	assert.Equal(t, "2025-12-18", got.Results)
	assert.True(t, got.ResultsClosed)
}

func TestResolvePairedPresentationUsesInstant(t *testing.T) {
	dates := &types.EditalDates{
		PresentationDeadlines: []types.Deadline{{Date: "2025-12-19", Time: "10:00"}, {Date: "2025-12-26"}},
	}
	now := time.Date(2025, time.December, 19, 15, 0, 0, 0, time.UTC)
	got, _ := Resolve(dates, PolicyPaired, now, time.UTC)
	assert.Equal(t, "2025-12-26", got.Presentation)
	assert.False(t, got.PresentationClosed)
}

func TestSelectUpcoming(t *testing.T) {
	now := time.Date(2025, time.December, 19, 15, 0, 0, 0, time.UTC)
	list := []types.Deadline{{Date: "bad"}, {Date: "2025-12-19", Time: "18:00"}, {Date: "2025-12-01"}}
	d, ok := SelectUpcoming(list, now, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2025-12-19", d.Date)

	d, ok = SelectUpcoming([]types.Deadline{{Date: "2025-11-01"}, {Date: "2025-12-19", Time: "09:00"}}, now, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2025-12-19", d.Date)

	_, ok = SelectUpcoming(nil, now, time.UTC)
	assert.False(t, ok)
}
