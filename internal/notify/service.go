package notify

import (
	"context"
	"fmt"

	"github.com/eventdeskio/eventdesk-leads/internal/leads"
	"github.com/eventdeskio/eventdesk-leads/pkg/logging"
)

// Service sends lead notification emails. A nil *Service is a valid
// disabled notifier: construction returns nil when no sender or operator
// address is configured, and callers skip wiring it in.
type Service struct {
	email         EmailSender
	operatorEmail string
	logger        *logging.Logger
}

// NewService creates a notification service. Returns nil when email delivery
// is not configured so the submission pipeline runs without notifications.
func NewService(email EmailSender, operatorEmail string, logger *logging.Logger) *Service {
	if email == nil || operatorEmail == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:         email,
		operatorEmail: operatorEmail,
		logger:        logger,
	}
}

// NotifyEarlyAccess emails the operator about a new early access request and
// sends the submitter a welcome note. Both sends are attempted even if one
// fails; the combined error reports how many did not go out.
func (s *Service) NotifyEarlyAccess(ctx context.Context, req *leads.EarlyAccessRequest) error {
	data := map[string]string{
		"Name":                 req.Name,
		"Email":                req.Email,
		"Company":              req.Company,
		"CompanyType":          string(req.CompanyType),
		"EventPlanningProblem": req.EventPlanningProblem,
		"SubmittedAt":          req.CreatedAt.Format("2006-01-02 15:04:05 MST"),
	}

	var failures []error

	body, err := render("early_access_operator", earlyAccessOperatorTmpl, data)
	if err != nil {
		failures = append(failures, err)
	} else {
		html, htmlErr := render("early_access_operator_html", earlyAccessOperatorHTMLTmpl, data)
		if htmlErr != nil {
			s.logger.Error("operator html render failed", "error", htmlErr)
			html = ""
		}
		msg := EmailMessage{
			To:      s.operatorEmail,
			Subject: "New EventDesk Early Access Request",
			Body:    body,
			HTML:    html,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("operator notification failed", "error", err, "id", req.ID)
			failures = append(failures, err)
		}
	}

	welcome, err := render("early_access_welcome", earlyAccessWelcomeTmpl, data)
	if err != nil {
		failures = append(failures, err)
	} else {
		msg := EmailMessage{
			To:      req.Email,
			ToName:  req.Name,
			Subject: "Welcome to EventDesk Early Access!",
			Body:    welcome,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("welcome email failed", "error", err, "id", req.ID)
			failures = append(failures, err)
		}
	}

	return combine(failures)
}

// NotifyDemoSchedule emails the operator about a new demo booking and sends
// the submitter a confirmation.
func (s *Service) NotifyDemoSchedule(ctx context.Context, req *leads.DemoScheduleRequest) error {
	data := map[string]string{
		"Name":          req.Name,
		"Email":         req.Email,
		"ScheduledDate": req.ScheduledDate,
		"ScheduledTime": req.ScheduledTime,
	}

	var failures []error

	body, err := render("demo_schedule_operator", demoScheduleOperatorTmpl, data)
	if err != nil {
		failures = append(failures, err)
	} else {
		msg := EmailMessage{
			To:      s.operatorEmail,
			Subject: "New EventDesk Demo Request",
			Body:    body,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("operator notification failed", "error", err, "id", req.ID)
			failures = append(failures, err)
		}
	}

	confirmation, err := render("demo_schedule_confirmation", demoScheduleConfirmationTmpl, data)
	if err != nil {
		failures = append(failures, err)
	} else {
		msg := EmailMessage{
			To:      req.Email,
			ToName:  req.Name,
			Subject: "Demo Request Confirmed - EventDesk",
			Body:    confirmation,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("confirmation email failed", "error", err, "id", req.ID)
			failures = append(failures, err)
		}
	}

	return combine(failures)
}

func combine(failures []error) error {
	if len(failures) == 0 {
		return nil
	}
	return fmt.Errorf("notify: %d notification(s) failed", len(failures))
}

var _ leads.Notifier = (*Service)(nil)
