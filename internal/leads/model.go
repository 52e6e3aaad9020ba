package leads

import (
	"regexp"
	"strings"
	"time"
)

// CompanyType classifies the submitting organization on the early access form.
type CompanyType string

const (
	CompanyTypeFreelancer CompanyType = "freelancer"
	CompanyTypeSME        CompanyType = "sme"
	CompanyTypeCorporate  CompanyType = "corporate"
	CompanyTypeAgency     CompanyType = "agency"
	CompanyTypeOther      CompanyType = "other"
)

// IsValid reports whether ct is one of the accepted company types.
func (ct CompanyType) IsValid() bool {
	switch ct {
	case CompanyTypeFreelancer, CompanyTypeSME, CompanyTypeCorporate, CompanyTypeAgency, CompanyTypeOther:
		return true
	}
	return false
}

// FieldErrors maps a form field name to a human-readable validation message.
type FieldErrors map[string]string

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// dateLayout is the wire format for scheduled demo dates.
const dateLayout = "2006-01-02"

// demoTimeSlots is the fixed slate of half-hour demo slots (business hours).
var demoTimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

// IsDemoTimeSlot reports whether t is one of the offered half-hour slots.
func IsDemoTimeSlot(t string) bool {
	for _, slot := range demoTimeSlots {
		if t == slot {
			return true
		}
	}
	return false
}

// EarlyAccessSubmission is the raw early access form payload.
type EarlyAccessSubmission struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Company              string `json:"company"`
	CompanyType          string `json:"companyType"`
	EventPlanningProblem string `json:"eventPlanningProblem"`
	RecaptchaToken       string `json:"recaptchaToken"`
}

// Validate checks field constraints. Pure; no I/O. An empty result means
// the submission is well-formed.
func (s *EarlyAccessSubmission) Validate() FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(s.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if !emailPattern.MatchString(s.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if len(strings.TrimSpace(s.Company)) < 2 {
		errs["company"] = "Company name must be at least 2 characters"
	}
	if !CompanyType(s.CompanyType).IsValid() {
		errs["companyType"] = "Please select a company type"
	}
	if len(strings.TrimSpace(s.EventPlanningProblem)) < 10 {
		errs["eventPlanningProblem"] = "Please describe your problem in at least 10 characters"
	}
	if s.RecaptchaToken == "" {
		errs["recaptchaToken"] = "reCAPTCHA verification required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// DemoScheduleSubmission is the raw schedule-a-demo form payload.
type DemoScheduleSubmission struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ScheduledDate  string `json:"scheduledDate"`
	ScheduledTime  string `json:"scheduledTime"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// Validate checks field constraints. Pure; no I/O. Date/time business rules
// (tomorrow onwards, weekday, slot membership) live in ValidateSchedule since
// they depend on the submission time.
func (s *DemoScheduleSubmission) Validate() FieldErrors {
	errs := FieldErrors{}
	if len(strings.TrimSpace(s.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if !emailPattern.MatchString(s.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if s.ScheduledDate == "" {
		errs["scheduledDate"] = "Please select a date"
	} else if _, err := time.Parse(dateLayout, s.ScheduledDate); err != nil {
		errs["scheduledDate"] = "Please select a valid date"
	}
	if s.ScheduledTime == "" {
		errs["scheduledTime"] = "Please select a time"
	}
	if s.RecaptchaToken == "" {
		errs["recaptchaToken"] = "reCAPTCHA verification required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSchedule enforces the booking rules relative to now: the date must
// be tomorrow or later, fall on a weekday, and the time must be one of the
// offered slots. The client generates its choices under the same rules, but
// they are re-checked here so a hand-crafted request cannot book a weekend
// or an off-slate time.
func (s *DemoScheduleSubmission) ValidateSchedule(now time.Time) FieldErrors {
	errs := FieldErrors{}

	date, err := time.ParseInLocation(dateLayout, s.ScheduledDate, now.Location())
	if err != nil {
		errs["scheduledDate"] = "Please select a valid date"
		return errs
	}

	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if date.Before(tomorrow) {
		errs["scheduledDate"] = "Please select a date from tomorrow onwards."
	} else if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		errs["scheduledDate"] = "Demos are scheduled on weekdays only."
	}

	if !IsDemoTimeSlot(s.ScheduledTime) {
		errs["scheduledTime"] = "Please choose one of the available time slots."
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// EarlyAccessRequest is a persisted early access signup.
type EarlyAccessRequest struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Company              string    `json:"company"`
	CompanyType          string    `json:"companyType"`
	EventPlanningProblem string    `json:"eventPlanningProblem"`
	CreatedAt            time.Time `json:"createdAt"`
}

// DemoScheduleRequest is a persisted demo booking.
type DemoScheduleRequest struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ScheduledDate string    `json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Outcome is the single shape returned to the presentation layer.
type Outcome struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Fields  FieldErrors `json:"fields,omitempty"`
}
