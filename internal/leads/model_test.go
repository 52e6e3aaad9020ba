package leads

import (
	"testing"
	"time"
)

func validEarlyAccess() *EarlyAccessSubmission {
	return &EarlyAccessSubmission{
		Name:                 "Jo Lee",
		Email:                "jo@acme.io",
		Company:              "Acme Events",
		CompanyType:          "agency",
		EventPlanningProblem: "We track everything in spreadsheets and keep losing vendor details.",
		RecaptchaToken:       "token-123",
	}
}

func validDemoSchedule() *DemoScheduleSubmission {
	return &DemoScheduleSubmission{
		Name:           "Jo Lee",
		Email:          "jo@acme.io",
		ScheduledDate:  "2026-09-09",
		ScheduledTime:  "10:30",
		RecaptchaToken: "token-123",
	}
}

func TestEarlyAccessValidateAcceptsWellFormed(t *testing.T) {
	if errs := validEarlyAccess().Validate(); errs != nil {
		t.Fatalf("expected no field errors, got %v", errs)
	}
}

func TestEarlyAccessValidateFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EarlyAccessSubmission)
		field  string
	}{
		{"short name", func(s *EarlyAccessSubmission) { s.Name = "J" }, "name"},
		{"whitespace name", func(s *EarlyAccessSubmission) { s.Name = "  a  " }, "name"},
		{"missing email", func(s *EarlyAccessSubmission) { s.Email = "" }, "email"},
		{"email without at", func(s *EarlyAccessSubmission) { s.Email = "jo.acme.io" }, "email"},
		{"email without dot", func(s *EarlyAccessSubmission) { s.Email = "jo@acme" }, "email"},
		{"email with space", func(s *EarlyAccessSubmission) { s.Email = "jo lee@acme.io" }, "email"},
		{"short company", func(s *EarlyAccessSubmission) { s.Company = "A" }, "company"},
		{"unknown company type", func(s *EarlyAccessSubmission) { s.CompanyType = "enterprise" }, "companyType"},
		{"empty company type", func(s *EarlyAccessSubmission) { s.CompanyType = "" }, "companyType"},
		{"short problem", func(s *EarlyAccessSubmission) { s.EventPlanningProblem = "too short" }, "eventPlanningProblem"},
		{"missing token", func(s *EarlyAccessSubmission) { s.RecaptchaToken = "" }, "recaptchaToken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validEarlyAccess()
			tc.mutate(sub)
			errs := sub.Validate()
			if errs == nil {
				t.Fatal("expected field errors")
			}
			if errs[tc.field] == "" {
				t.Fatalf("expected error for field %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestCompanyTypeIsValid(t *testing.T) {
	for _, ct := range []CompanyType{CompanyTypeFreelancer, CompanyTypeSME, CompanyTypeCorporate, CompanyTypeAgency, CompanyTypeOther} {
		if !ct.IsValid() {
			t.Errorf("expected %q valid", ct)
		}
	}
	if CompanyType("startup").IsValid() {
		t.Error("expected unknown type invalid")
	}
}

func TestDemoScheduleValidateFieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DemoScheduleSubmission)
		field  string
	}{
		{"short name", func(s *DemoScheduleSubmission) { s.Name = "X" }, "name"},
		{"bad email", func(s *DemoScheduleSubmission) { s.Email = "nope" }, "email"},
		{"missing date", func(s *DemoScheduleSubmission) { s.ScheduledDate = "" }, "scheduledDate"},
		{"unparseable date", func(s *DemoScheduleSubmission) { s.ScheduledDate = "09/09/2026" }, "scheduledDate"},
		{"missing time", func(s *DemoScheduleSubmission) { s.ScheduledTime = "" }, "scheduledTime"},
		{"missing token", func(s *DemoScheduleSubmission) { s.RecaptchaToken = "" }, "recaptchaToken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validDemoSchedule()
			tc.mutate(sub)
			errs := sub.Validate()
			if errs == nil || errs[tc.field] == "" {
				t.Fatalf("expected error for field %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestValidateScheduleRules(t *testing.T) {
	// A Tuesday afternoon.
	now := time.Date(2026, time.September, 1, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		date  string
		slot  string
		field string
		want  string
	}{
		{"tomorrow weekday ok", "2026-09-02", "09:00", "", ""},
		{"next week ok", "2026-09-09", "17:30", "", ""},
		{"today rejected", "2026-09-01", "10:00", "scheduledDate", "Please select a date from tomorrow onwards."},
		{"past rejected", "2026-08-28", "10:00", "scheduledDate", "Please select a date from tomorrow onwards."},
		{"saturday rejected", "2026-09-05", "10:00", "scheduledDate", "Demos are scheduled on weekdays only."},
		{"sunday rejected", "2026-09-06", "10:00", "scheduledDate", "Demos are scheduled on weekdays only."},
		{"off slot rejected", "2026-09-02", "10:15", "scheduledTime", "Please choose one of the available time slots."},
		{"after hours rejected", "2026-09-02", "18:00", "scheduledTime", "Please choose one of the available time slots."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validDemoSchedule()
			sub.ScheduledDate = tc.date
			sub.ScheduledTime = tc.slot
			errs := sub.ValidateSchedule(now)
			if tc.field == "" {
				if errs != nil {
					t.Fatalf("expected acceptance, got %v", errs)
				}
				return
			}
			if errs == nil || errs[tc.field] != tc.want {
				t.Fatalf("expected %q error %q, got %v", tc.field, tc.want, errs)
			}
		})
	}
}

func TestIsDemoTimeSlot(t *testing.T) {
	if !IsDemoTimeSlot("09:00") || !IsDemoTimeSlot("17:30") {
		t.Error("expected boundary slots accepted")
	}
	for _, bad := range []string{"08:30", "18:00", "9:00", "10:15", ""} {
		if IsDemoTimeSlot(bad) {
			t.Errorf("expected %q rejected", bad)
		}
	}
}
