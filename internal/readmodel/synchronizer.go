package readmodel

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type State int32

const (
	StateInitializing State = iota
	StateLive
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateLive:
		return "live"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Fetcher menjalankan fetch penuh awal, terurut deterministik.
// Varian elevated-trust memakai Fetcher yang query lewat handle
// service-role sementara subscription tetap jalan dengan kredensial
// caller sendiri.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Row, error)
}

type FetcherFunc func(ctx context.Context) ([]Row, error)

func (f FetcherFunc) Fetch(ctx context.Context) ([]Row, error) { return f(ctx) }

type Synchronizer struct {
	fetcher Fetcher
	filter  Filter
	events  <-chan Event
	logger  *zap.Logger

	mu      sync.RWMutex
	rows    []Row
	state   State
	lastErr error

	sf        singleflight.Group
	done      chan struct{}
	closeOnce sync.Once
}

func NewSynchronizer(fetcher Fetcher, filter Filter, events <-chan Event, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.L()
	}
	return &Synchronizer{
		fetcher: fetcher,
		filter:  filter,
		events:  events,
		logger:  logger.Named("readmodel"),
		state:   StateInitializing,
		done:    make(chan struct{}),
	}
}

// Start menjalankan fetch awal lalu loop penerap event. Fetch gagal
// menurunkan state ke Degraded (koleksi kosong, error tercatat),
// tidak pernah panic; Refetch tetap tersedia untuk pulih.
func (s *Synchronizer) Start(ctx context.Context) {
	rows, err := s.fetcher.Fetch(ctx)

	s.mu.Lock()
	if err != nil {
		s.rows = nil
		s.state = StateDegraded
		s.lastErr = err
		s.logger.Error("initial fetch failed, read model degraded", zap.Error(err))
	} else {
		s.rows = rows
		s.state = StateLive
		s.lastErr = nil
	}
	s.mu.Unlock()

	go s.loop(ctx)
}

func (s *Synchronizer) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case ev, ok := <-s.events:
			if !ok {
				return
			}
			s.mu.Lock()
			if s.state == StateLive {
				s.rows = Apply(s.rows, ev, s.filter)
			}
			s.mu.Unlock()
		}
	}
}

// Rows mengembalikan snapshot koleksi saat ini.
func (s *Synchronizer) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *Synchronizer) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Synchronizer) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Refetch mengulang fetch awal dan mengganti baseline secara utuh,
// bukan merge incremental. Panggilan konkuren di-collapse jadi satu
// round trip via singleflight.
func (s *Synchronizer) Refetch(ctx context.Context) error {
	_, err, _ := s.sf.Do("refetch", func() (any, error) {
		rows, err := s.fetcher.Fetch(ctx)
		if err != nil {
			s.mu.Lock()
			s.state = StateDegraded
			s.lastErr = err
			s.mu.Unlock()
			return nil, err
		}

		s.mu.Lock()
		s.rows = rows
		s.state = StateLive
		s.lastErr = nil
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Close melepas loop event. Aman dipanggil berkali-kali dan setelah
// owning view hilang.
func (s *Synchronizer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
