package notify

import (
	"bytes"
	"fmt"
	"text/template"
)

// render compiles a message template with strict missing-key semantics so a
// renamed field fails loudly in tests instead of mailing a blank.
func render(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("notify: parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: execute %s: %w", name, err)
	}
	return buf.String(), nil
}

const earlyAccessOperatorTmpl = `New Early Access Request

Name: {{.Name}}
Email: {{.Email}}
Company: {{.Company}}
Company Type: {{.CompanyType}}
Problem Description:
{{.EventPlanningProblem}}

Submitted: {{.SubmittedAt}}
`

const earlyAccessOperatorHTMLTmpl = `<h2>New Early Access Request</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Company:</strong> {{.Company}}</p>
<p><strong>Company Type:</strong> {{.CompanyType}}</p>
<p><strong>Problem Description:</strong></p>
<p>{{.EventPlanningProblem}}</p>
<p><strong>Submitted:</strong> {{.SubmittedAt}}</p>
`

const earlyAccessWelcomeTmpl = `Hi {{.Name}},

Thanks for requesting early access to EventDesk! You're on the list.

We're building EventDesk to take the spreadsheet pain out of event planning,
and we'll reach out as soon as your invite is ready.

- The EventDesk Team
`

const demoScheduleOperatorTmpl = `New Demo Request

Name: {{.Name}}
Email: {{.Email}}
Date: {{.ScheduledDate}}
Time: {{.ScheduledTime}}
`

const demoScheduleConfirmationTmpl = `Hi {{.Name}},

Your EventDesk demo is confirmed for {{.ScheduledDate}} at {{.ScheduledTime}}.

We'll send a calendar invite with the meeting link shortly. If the time no
longer works, just reply to this email and we'll reschedule.

- The EventDesk Team
`
