package leads

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for lead storage. Both collections are
// append-only; nothing in this subsystem updates or deletes a lead.
type Repository interface {
	CreateEarlyAccess(ctx context.Context, sub *EarlyAccessSubmission) (*EarlyAccessRequest, error)
	EarlyAccessEmailExists(ctx context.Context, email string) (bool, error)
	CreateDemoSchedule(ctx context.Context, sub *DemoScheduleSubmission) (*DemoScheduleRequest, error)
}

// InMemoryRepository keeps leads in process memory. Used in tests and when
// no DATABASE_URL is configured during local development.
type InMemoryRepository struct {
	mu          sync.RWMutex
	earlyAccess map[string]*EarlyAccessRequest // keyed by lowercased email
	demos       []*DemoScheduleRequest
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		earlyAccess: make(map[string]*EarlyAccessRequest),
	}
}

// CreateEarlyAccess stores an early access signup, enforcing email uniqueness.
func (r *InMemoryRepository) CreateEarlyAccess(ctx context.Context, sub *EarlyAccessSubmission) (*EarlyAccessRequest, error) {
	key := strings.ToLower(sub.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.earlyAccess[key]; exists {
		return nil, ErrDuplicateEmail
	}

	req := &EarlyAccessRequest{
		ID:                   uuid.New().String(),
		Name:                 sub.Name,
		Email:                sub.Email,
		Company:              sub.Company,
		CompanyType:          sub.CompanyType,
		EventPlanningProblem: sub.EventPlanningProblem,
		CreatedAt:            time.Now().UTC(),
	}
	r.earlyAccess[key] = req
	return req, nil
}

// EarlyAccessEmailExists reports whether an early access signup already uses email.
func (r *InMemoryRepository) EarlyAccessEmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.earlyAccess[strings.ToLower(email)]
	return exists, nil
}

// CreateDemoSchedule stores a demo booking. No uniqueness constraint.
func (r *InMemoryRepository) CreateDemoSchedule(ctx context.Context, sub *DemoScheduleSubmission) (*DemoScheduleRequest, error) {
	req := &DemoScheduleRequest{
		ID:            uuid.New().String(),
		Name:          sub.Name,
		Email:         sub.Email,
		ScheduledDate: sub.ScheduledDate,
		ScheduledTime: sub.ScheduledTime,
		CreatedAt:     time.Now().UTC(),
	}

	r.mu.Lock()
	r.demos = append(r.demos, req)
	r.mu.Unlock()

	return req, nil
}

// EarlyAccessCount returns the number of stored early access signups (test helper).
func (r *InMemoryRepository) EarlyAccessCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.earlyAccess)
}

// DemoScheduleCount returns the number of stored demo bookings (test helper).
func (r *InMemoryRepository) DemoScheduleCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.demos)
}

var _ Repository = (*InMemoryRepository)(nil)
