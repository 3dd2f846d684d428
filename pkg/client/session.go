package client

import (
	"context"
	"errors"
	"sync"

	"github.com/kktculasim/ulasim-backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrSuperseded is returned by a search that a newer search replaced before it finished
var ErrSuperseded = errors.New("search superseded by a newer one")

// SearchOutcome holds both halves of a rider search
type SearchOutcome struct {
	Seq         uint64
	Schedules   *models.ScheduleSearchResult
	SmartRoutes *models.SmartRouteSearchResult
}

// SearchSession runs rider searches so that only the latest one is ever applied.
// Starting a search cancels the one in flight.
type SearchSession struct {
	client *Client

	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// NewSearchSession creates a session on top of c
func NewSearchSession(c *Client) *SearchSession {
	return &SearchSession{client: c}
}

// Latest returns the sequence number of the most recently started search
func (s *SearchSession) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Search fetches direct schedules and smart routes in parallel. It returns
// ErrSuperseded when another Search started before this one completed.
func (s *SearchSession) Search(ctx context.Context, origin, destination, startTime string) (*SearchOutcome, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.latest++
	seq := s.latest
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer s.release(seq, cancel)

	outcome := &SearchOutcome{Seq: seq}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.client.Schedules(gctx, origin, destination)
		outcome.Schedules = result
		return err
	})
	g.Go(func() error {
		result, err := s.client.SmartRoutes(gctx, origin, destination, startTime)
		outcome.SmartRoutes = result
		return err
	})
	err := g.Wait()

	if !s.isLatest(seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *SearchSession) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.latest
}

func (s *SearchSession) release(seq uint64, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	if seq == s.latest {
		s.cancel = nil
	}
	s.mu.Unlock()
}
