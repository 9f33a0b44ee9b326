package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func changeRowOn(day string) ChangeRow {
	return ChangeRow{AttendanceResponse: AttendanceResponse{
		ID:             "att-1",
		EmployeeID:     "emp-1",
		AttendanceDate: day,
		Status:         "present",
	}}
}

func TestDateFilter_MatchesOnlyGivenDate(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	filter := DateFilter(date)

	assert.True(t, filter(changeRowOn("2026-03-14")))
	assert.False(t, filter(changeRowOn("2026-03-13")))
}

func TestTodayFilter_FollowsCurrentUTCDay(t *testing.T) {
	filter := TodayFilter()

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	assert.True(t, filter(changeRowOn(today)))
	assert.False(t, filter(changeRowOn(yesterday)))
}

func TestTodayFetcher_FetchesCurrentUTCDate(t *testing.T) {
	var gotDate time.Time
	repo := &fakeRepo{
		findAllByDateFn: func(ctx context.Context, date time.Time) ([]Attendance, error) {
			gotDate = date
			return nil, nil
		},
	}

	fetcher := TodayFetcher(repo)
	rows, err := fetcher.Fetch(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), gotDate.Format("2006-01-02"))
	assert.Equal(t, time.UTC, gotDate.Location())
}

func TestNewFetcher_MapsRowsToChangeRows(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	attendanceID := uuid.New()
	repo := &fakeRepo{
		findAllByDateFn: func(ctx context.Context, d time.Time) ([]Attendance, error) {
			return []Attendance{
				{ID: attendanceID, EmployeeID: uuid.New(), AttendanceDate: d, Status: statusPresent},
			}, nil
		},
	}

	rows, err := NewFetcher(repo, date).Fetch(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		row, ok := rows[0].(ChangeRow)
		assert.True(t, ok)
		assert.Equal(t, attendanceID.String(), row.Key())
		assert.Equal(t, "2026-03-14", row.AttendanceDate)
	}
}
