package leads

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/eventdeskio/eventdesk-leads/internal/captcha"
	"github.com/eventdeskio/eventdesk-leads/internal/observability/metrics"
	"github.com/eventdeskio/eventdesk-leads/internal/ratelimit"
	"github.com/eventdeskio/eventdesk-leads/pkg/logging"
)

var tracer = otel.Tracer("eventdesk.internal.leads")

const (
	formEarlyAccess  = "early_access"
	formDemoSchedule = "demo_schedule"

	notifyTimeout = 10 * time.Second
)

// Notifier dispatches best-effort emails for an accepted lead. Failures are
// the notifier's to log; the service never fails a submission over them.
type Notifier interface {
	NotifyEarlyAccess(ctx context.Context, req *EarlyAccessRequest) error
	NotifyDemoSchedule(ctx context.Context, req *DemoScheduleRequest) error
}

// Service orchestrates a lead submission: validate, rate-limit, verify the
// captcha token, check domain rules, persist, then notify. Every failure
// before persistence short-circuits into an Outcome carrying one
// human-readable sentence; nothing after persistence can undo it.
type Service struct {
	repo         Repository
	verifier     captcha.Verifier
	earlyLimiter *ratelimit.Limiter
	demoLimiter  *ratelimit.Limiter
	notifier     Notifier
	minScore     float64
	metrics      *metrics.LeadMetrics
	logger       *logging.Logger
	now          func() time.Time
}

// ServiceConfig wires the service's collaborators. Verifier, limiters,
// notifier and metrics are all optional capabilities: a nil value disables
// that step rather than failing submissions.
type ServiceConfig struct {
	Repository        Repository
	Verifier          captcha.Verifier
	EarlyAccessLimit  *ratelimit.Limiter
	DemoScheduleLimit *ratelimit.Limiter
	Notifier          Notifier
	MinScore          float64
	Metrics           *metrics.LeadMetrics
	Logger            *logging.Logger
}

// NewService creates a submission service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Repository == nil {
		panic("leads: repository required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = 0.5
	}
	return &Service{
		repo:         cfg.Repository,
		verifier:     cfg.Verifier,
		earlyLimiter: cfg.EarlyAccessLimit,
		demoLimiter:  cfg.DemoScheduleLimit,
		notifier:     cfg.Notifier,
		minScore:     cfg.MinScore,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
		now:          time.Now,
	}
}

// SubmitEarlyAccess runs the early access pipeline. clientIP identifies the
// rate-limit bucket; empty means the shared unknown bucket.
func (s *Service) SubmitEarlyAccess(ctx context.Context, sub *EarlyAccessSubmission, clientIP string) Outcome {
	ctx, span := tracer.Start(ctx, "leads.submit_early_access")
	defer span.End()
	start := s.now()

	outcome := s.submitEarlyAccess(ctx, sub, clientIP)

	label := "accepted"
	if !outcome.Success {
		label = "rejected"
	}
	span.SetAttributes(attribute.Bool("leads.accepted", outcome.Success))
	s.metrics.ObserveSubmission(formEarlyAccess, label, s.now().Sub(start).Seconds())
	return outcome
}

func (s *Service) submitEarlyAccess(ctx context.Context, sub *EarlyAccessSubmission, clientIP string) Outcome {
	if fields := sub.Validate(); fields != nil {
		return Outcome{Success: false, Error: msgValidation, Fields: fields}
	}

	if !s.earlyLimiter.Allow(ctx, clientIP) {
		return Outcome{Success: false, Error: msgRateLimited}
	}

	if outcome, ok := s.verifyToken(ctx, sub.RecaptchaToken); !ok {
		return outcome
	}

	// Friendly pre-check; the unique index on email is the real guard.
	exists, err := s.repo.EarlyAccessEmailExists(ctx, sub.Email)
	if err != nil {
		s.logger.Error("early access: duplicate lookup failed", "error", err)
		return Outcome{Success: false, Error: msgPersistence}
	}
	if exists {
		return Outcome{Success: false, Error: msgDuplicate}
	}

	req, err := s.repo.CreateEarlyAccess(ctx, sub)
	if err != nil {
		if err == ErrDuplicateEmail {
			return Outcome{Success: false, Error: msgDuplicate}
		}
		s.logger.Error("early access: persist failed", "error", err)
		return Outcome{Success: false, Error: msgPersistence}
	}

	s.logger.Info("early access lead created", "id", req.ID, "company_type", req.CompanyType)

	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyEarlyAccess(notifyCtx, req); err != nil {
			s.logger.Error("early access: notification failed", "error", err, "id", req.ID)
			s.metrics.ObserveNotifyFailure(formEarlyAccess)
		}
	}

	return Outcome{Success: true}
}

// SubmitDemoSchedule runs the demo booking pipeline.
func (s *Service) SubmitDemoSchedule(ctx context.Context, sub *DemoScheduleSubmission, clientIP string) Outcome {
	ctx, span := tracer.Start(ctx, "leads.submit_demo_schedule")
	defer span.End()
	start := s.now()

	outcome := s.submitDemoSchedule(ctx, sub, clientIP)

	label := "accepted"
	if !outcome.Success {
		label = "rejected"
	}
	span.SetAttributes(attribute.Bool("leads.accepted", outcome.Success))
	s.metrics.ObserveSubmission(formDemoSchedule, label, s.now().Sub(start).Seconds())
	return outcome
}

func (s *Service) submitDemoSchedule(ctx context.Context, sub *DemoScheduleSubmission, clientIP string) Outcome {
	if fields := sub.Validate(); fields != nil {
		return Outcome{Success: false, Error: msgValidation, Fields: fields}
	}

	if !s.demoLimiter.Allow(ctx, clientIP) {
		return Outcome{Success: false, Error: msgRateLimited}
	}

	if outcome, ok := s.verifyToken(ctx, sub.RecaptchaToken); !ok {
		return outcome
	}

	if fields := sub.ValidateSchedule(s.now()); fields != nil {
		msg := fields["scheduledDate"]
		if msg == "" {
			msg = fields["scheduledTime"]
		}
		return Outcome{Success: false, Error: msg, Fields: fields}
	}

	req, err := s.repo.CreateDemoSchedule(ctx, sub)
	if err != nil {
		s.logger.Error("demo schedule: persist failed", "error", err)
		return Outcome{Success: false, Error: msgPersistence}
	}

	s.logger.Info("demo schedule lead created", "id", req.ID, "date", req.ScheduledDate, "time", req.ScheduledTime)

	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyDemoSchedule(notifyCtx, req); err != nil {
			s.logger.Error("demo schedule: notification failed", "error", err, "id", req.ID)
			s.metrics.ObserveNotifyFailure(formDemoSchedule)
		}
	}

	return Outcome{Success: true}
}

// verifyToken applies the verification policy: the oracle must answer
// success, and when it reports a score the score must clear the threshold.
// No detail about why verification failed is surfaced to the caller.
func (s *Service) verifyToken(ctx context.Context, token string) (Outcome, bool) {
	if s.verifier == nil {
		s.logger.Warn("captcha verification disabled, accepting token unchecked")
		return Outcome{}, true
	}

	result := s.verifier.Verify(ctx, token)
	if !result.Success {
		return Outcome{Success: false, Error: msgVerifyFailed}, false
	}
	if result.Score != 0 && result.Score < s.minScore {
		s.logger.Warn("captcha score below threshold", "score", result.Score, "min_score", s.minScore)
		return Outcome{Success: false, Error: msgLowScore}, false
	}
	return Outcome{}, true
}
