package readmodel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testRow struct {
	ID   string
	Date string
	Val  int
}

func (r testRow) Key() string { return r.ID }

func dateFilter(date string) Filter {
	return func(r Row) bool {
		row, ok := r.(testRow)
		return ok && row.Date == date
	}
}

func TestApply_InsertRespectsFilter(t *testing.T) {
	filter := dateFilter("2026-08-30")

	rows := Apply(nil, Event{Op: OpInsert, Row: testRow{ID: "1", Date: "2026-08-30"}}, filter)
	assert.Len(t, rows, 1)

	// Insert di luar filter di-drop tanpa error.
	rows = Apply(rows, Event{Op: OpInsert, Row: testRow{ID: "2", Date: "2026-08-29"}}, filter)
	assert.Len(t, rows, 1)
}

func TestApply_UpdateReplacesByKey(t *testing.T) {
	rows := []Row{testRow{ID: "1", Date: "2026-08-30", Val: 1}}

	rows = Apply(rows, Event{Op: OpUpdate, Row: testRow{ID: "1", Date: "2026-08-30", Val: 2}}, dateFilter("2026-08-30"))
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].(testRow).Val)
}

func TestApply_UpdateUnknownMatchingKeyUpserts(t *testing.T) {
	rows := Apply(nil, Event{Op: OpUpdate, Row: testRow{ID: "9", Date: "2026-08-30"}}, dateFilter("2026-08-30"))
	assert.Len(t, rows, 1)
	assert.Equal(t, "9", rows[0].Key())
}

func TestApply_DeleteIgnoresFilter(t *testing.T) {
	rows := []Row{testRow{ID: "1", Date: "2026-08-30"}}

	// Filter cocok dengan tanggal lain; delete tetap menghapus by key.
	rows = Apply(rows, Event{Op: OpDelete, Row: testRow{ID: "1", Date: "1970-01-01"}}, dateFilter("2026-08-30"))
	assert.Empty(t, rows)

	// Delete untuk key yang tidak ada adalah no-op.
	rows = Apply(rows, Event{Op: OpDelete, Row: testRow{ID: "404"}}, nil)
	assert.Empty(t, rows)
}

func TestApply_ReplayIsIdempotentPerKey(t *testing.T) {
	ev := Event{Op: OpInsert, Row: testRow{ID: "1", Date: "2026-08-30", Val: 7}}

	rows := Apply(nil, ev, nil)
	rows = Apply(rows, ev, nil)
	assert.Len(t, rows, 1)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	original := []Row{testRow{ID: "1", Val: 1}}

	_ = Apply(original, Event{Op: OpUpdate, Row: testRow{ID: "1", Val: 99}}, nil)
	assert.Equal(t, 1, original[0].(testRow).Val)
}

func TestSynchronizer_LiveAppliesEvents(t *testing.T) {
	events := make(chan Event)
	fetcher := FetcherFunc(func(ctx context.Context) ([]Row, error) {
		return []Row{testRow{ID: "1", Date: "2026-08-30"}}, nil
	})

	s := NewSynchronizer(fetcher, dateFilter("2026-08-30"), events, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Close()

	assert.Equal(t, StateLive, s.State())
	assert.Len(t, s.Rows(), 1)

	events <- Event{Op: OpInsert, Row: testRow{ID: "2", Date: "2026-08-30"}}

	assert.Eventually(t, func() bool {
		return len(s.Rows()) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestSynchronizer_InitialFetchFailureDegrades(t *testing.T) {
	events := make(chan Event)
	boom := errors.New("db unreachable")
	fetcher := FetcherFunc(func(ctx context.Context) ([]Row, error) {
		return nil, boom
	})

	s := NewSynchronizer(fetcher, nil, events, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Close()

	assert.Equal(t, StateDegraded, s.State())
	assert.ErrorIs(t, s.Err(), boom)
	assert.Empty(t, s.Rows())
}

func TestSynchronizer_RefetchReplacesWholesale(t *testing.T) {
	events := make(chan Event)
	var mu sync.Mutex
	result := []Row{testRow{ID: "old"}}
	fetcher := FetcherFunc(func(ctx context.Context) ([]Row, error) {
		mu.Lock()
		defer mu.Unlock()
		out := make([]Row, len(result))
		copy(out, result)
		return out, nil
	})

	s := NewSynchronizer(fetcher, nil, events, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Close()

	mu.Lock()
	result = []Row{testRow{ID: "new-1"}, testRow{ID: "new-2"}}
	mu.Unlock()

	assert.NoError(t, s.Refetch(ctx))
	rows := s.Rows()
	assert.Len(t, rows, 2)
	assert.Equal(t, "new-1", rows[0].Key())
}

func TestSynchronizer_RefetchRecoversFromDegraded(t *testing.T) {
	events := make(chan Event)
	var mu sync.Mutex
	fail := true
	fetcher := FetcherFunc(func(ctx context.Context) ([]Row, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, errors.New("still down")
		}
		return []Row{testRow{ID: "1"}}, nil
	})

	s := NewSynchronizer(fetcher, nil, events, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Close()

	assert.Equal(t, StateDegraded, s.State())

	mu.Lock()
	fail = false
	mu.Unlock()

	assert.NoError(t, s.Refetch(ctx))
	assert.Equal(t, StateLive, s.State())
	assert.NoError(t, s.Err())
	assert.Len(t, s.Rows(), 1)
}

func TestSynchronizer_CloseIsIdempotent(t *testing.T) {
	events := make(chan Event)
	fetcher := FetcherFunc(func(ctx context.Context) ([]Row, error) { return nil, nil })

	s := NewSynchronizer(fetcher, nil, events, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	assert.NotPanics(t, func() {
		s.Close()
		s.Close()
	})
}

func TestSynchronizer_RowsReturnsSnapshotCopy(t *testing.T) {
	events := make(chan Event)
	fetcher := FetcherFunc(func(ctx context.Context) ([]Row, error) {
		return []Row{testRow{ID: "1"}}, nil
	})

	s := NewSynchronizer(fetcher, nil, events, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Close()

	snapshot := s.Rows()
	snapshot[0] = testRow{ID: "mutated"}
	assert.Equal(t, "1", s.Rows()[0].Key())
}
