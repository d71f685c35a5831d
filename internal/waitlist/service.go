package waitlist

import (
	"context"
	"sync"
	"time"

	"waitly/pkg/logger"
)

// Service interface defines the contract for waitlist business operations
type Service interface {
	// Public operations
	Status(ctx context.Context) *StatusResponse
	Enqueue(ctx context.Context) *EnqueueResponse

	// Admin operations
	AdminReset(ctx context.Context, request *ResetRequest) *State
	AdminSetCap(ctx context.Context, newCap int) bool
}

// ServiceConfig contains configuration for the waitlist service
type ServiceConfig struct {
	OpenHour   int
	OpenMinute int
}

// DefaultServiceConfig returns default service configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		OpenHour:   9,
		OpenMinute: 0,
	}
}

// service implements the Service interface. One process-wide mutex
// serializes every load-decide-save cycle against the shared store, which
// is what keeps the weekly cap from being oversubscribed by concurrent
// requests. Status holds the read lock only.
type service struct {
	store Store
	clock *WeekClock
	cfg   *ServiceConfig
	log   *logger.Logger

	mu sync.RWMutex
}

// NewService creates a new waitlist service
func NewService(store Store, clock *WeekClock, cfg *ServiceConfig, log *logger.Logger) Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &service{
		store: store,
		clock: clock,
		cfg:   cfg,
		log:   log,
	}
}

// Status reports current capacity for the ongoing ISO week without mutating
// anything.
func (s *service) Status(ctx context.Context) *StatusResponse {
	s.mu.RLock()
	state := s.store.Load(ctx)
	s.mu.RUnlock()

	weekKey := s.clock.CurrentWeekKey()
	count := state.Weeks[weekKey].Count
	nextOpen := s.clock.NextWindowOpen(s.cfg.OpenHour, s.cfg.OpenMinute)

	return &StatusResponse{
		Total:             state.Total,
		WeeklyCap:         state.Cap,
		WeekKey:           weekKey,
		CurrentWeekCount:  count,
		RemainingThisWeek: remaining(state.Cap, count),
		NextOpenISO:       nextOpen.Format(time.RFC3339),
		NextOpenHuman:     s.clock.FormatHuman(nextOpen),
	}
}

// Enqueue decides one signup attempt against the current week's cap. The
// check-then-increment runs under the write lock, so no two concurrent
// calls can both see a free slot and push the count past the cap. A failed
// persist is logged and the decision is still returned.
func (s *service) Enqueue(ctx context.Context) *EnqueueResponse {
	weekKey := s.clock.CurrentWeekKey()

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load(ctx)
	count := state.Weeks[weekKey].Count

	if count >= state.Cap {
		s.log.LogSignupRejected(ctx, weekKey, count, state.Cap)
		return &EnqueueResponse{
			Accepted:          false,
			Reason:            ReasonWeeklyCapReached,
			WeeklyCap:         state.Cap,
			WeekKey:           weekKey,
			CurrentWeekCount:  &count,
			RemainingThisWeek: 0,
			Total:             state.Total,
		}
	}

	count++
	state.Weeks[weekKey] = WeekCounter{Count: count}
	state.Total++

	if err := s.store.Save(ctx, state); err != nil {
		s.log.LogStateSaveError(ctx, err)
	}

	left := remaining(state.Cap, count)
	s.log.LogSignupAccepted(ctx, weekKey, count, left, state.Total)

	return &EnqueueResponse{
		Accepted:          true,
		Total:             state.Total,
		Position:          count, // slot within this week, not a global queue position
		WeeklyCap:         state.Cap,
		WeekKey:           weekKey,
		RemainingThisWeek: left,
	}
}

// AdminReset clears the weekly counters, sets the total from the payload
// (zero when absent) and optionally overwrites the cap. This is an
// administrative override: the cap value is not validated here.
func (s *service) AdminReset(ctx context.Context, request *ResetRequest) *State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load(ctx)
	state.Weeks = map[string]WeekCounter{}
	state.Total = 0
	if request != nil {
		if request.Total != nil {
			state.Total = *request.Total
		}
		if request.Cap != nil {
			state.Cap = *request.Cap
		}
	}

	if err := s.store.Save(ctx, state); err != nil {
		s.log.LogStateSaveError(ctx, err)
	}
	s.log.LogAdminAction(ctx, "reset", map[string]interface{}{
		"total": state.Total,
		"cap":   state.Cap,
	})

	return state
}

// AdminSetCap validates and applies a new weekly cap. Lowering the cap
// below the current week's count leaves already-accepted slots intact.
func (s *service) AdminSetCap(ctx context.Context, newCap int) bool {
	if newCap < 1 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.Load(ctx)
	state.Cap = newCap

	if err := s.store.Save(ctx, state); err != nil {
		s.log.LogStateSaveError(ctx, err)
	}
	s.log.LogAdminAction(ctx, "set_cap", map[string]interface{}{"cap": newCap})

	return true
}

func remaining(limit, count int) int {
	if left := limit - count; left > 0 {
		return left
	}
	return 0
}
