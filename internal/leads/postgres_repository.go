package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres error code raised by the unique index on
// early_access_requests.email. The index is the authoritative duplicate
// guard; the application-level existence lookup only exists to produce a
// friendly message ahead of the race.
const uniqueViolation = "23505"

// Querier is the subset of pgxpool.Pool the repository needs, kept narrow
// so tests can substitute pgxmock.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool Querier
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(pool Querier) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// CreateEarlyAccess inserts a new early access row. A duplicate email maps
// to ErrDuplicateEmail.
func (r *PostgresRepository) CreateEarlyAccess(ctx context.Context, sub *EarlyAccessSubmission) (*EarlyAccessRequest, error) {
	id := uuid.New()
	query := `
		INSERT INTO early_access_requests (id, name, email, company, company_type, event_planning_problem)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		sub.Name,
		sub.Email,
		sub.Company,
		sub.CompanyType,
		sub.EventPlanningProblem,
	).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("leads: insert early access failed: %w", err)
	}

	return &EarlyAccessRequest{
		ID:                   id.String(),
		Name:                 sub.Name,
		Email:                sub.Email,
		Company:              sub.Company,
		CompanyType:          sub.CompanyType,
		EventPlanningProblem: sub.EventPlanningProblem,
		CreatedAt:            createdAt,
	}, nil
}

// EarlyAccessEmailExists reports whether email already has a signup.
func (r *PostgresRepository) EarlyAccessEmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM early_access_requests WHERE lower(email) = lower($1))`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("leads: email lookup failed: %w", err)
	}
	return exists, nil
}

// CreateDemoSchedule inserts a new demo booking row.
func (r *PostgresRepository) CreateDemoSchedule(ctx context.Context, sub *DemoScheduleSubmission) (*DemoScheduleRequest, error) {
	id := uuid.New()
	query := `
		INSERT INTO demo_schedule_requests (id, name, email, scheduled_date, scheduled_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		sub.Name,
		sub.Email,
		sub.ScheduledDate,
		sub.ScheduledTime,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert demo schedule failed: %w", err)
	}

	return &DemoScheduleRequest{
		ID:            id.String(),
		Name:          sub.Name,
		Email:         sub.Email,
		ScheduledDate: sub.ScheduledDate,
		ScheduledTime: sub.ScheduledTime,
		CreatedAt:     createdAt,
	}, nil
}

var _ Repository = (*PostgresRepository)(nil)
