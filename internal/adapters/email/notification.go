package email

import (
	"bytes"
	"fmt"
	"html/template"

	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// markdown renders request notes. Raw HTML in the notes is escaped.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var requestTmpl = template.Must(template.New("request").Parse(`<h2>New booking request for {{.Club}}</h2>
<table>
<tr><th align="left">Team</th><td>{{.Request.Team}}</td></tr>
<tr><th align="left">Type</th><td>{{.Type}}</td></tr>
<tr><th align="left">When</th><td>{{.When}}</td></tr>
{{if .Request.Facility}}<tr><th align="left">Facility</th><td>{{.Request.Facility}}</td></tr>{{end}}
</table>
{{if .Notes}}<h3>Notes</h3>
{{.Notes}}{{end}}
<p>Review pending requests and run the solver check from the ClubSync calendar.</p>
`))

// renderMarkdown converts Markdown to HTML, falling back to escaped text on error.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// BookingRequestNotification builds the email sent to the fixtures secretary
// when a team submits a booking request.
// PRE: r has been validated; to is non-empty
// POST: Returns a request with subject and HTML body populated
func BookingRequestNotification(clubName string, to []string, r bookingrequest.Request) (SendRequest, error) {
	when := r.Slot()
	if r.Recurrence == bookingrequest.RecurrenceWeekly {
		when = "every " + when
	}
	typeLabel := event.TypeLabels[r.EventType]
	if typeLabel == "" {
		typeLabel = r.EventType
	}

	var body bytes.Buffer
	err := requestTmpl.Execute(&body, struct {
		Club    string
		Request bookingrequest.Request
		Type    string
		When    string
		Notes   template.HTML
	}{
		Club:    clubName,
		Request: r,
		Type:    typeLabel,
		When:    when,
		Notes:   notesHTML(r.Notes),
	})
	if err != nil {
		return SendRequest{}, fmt.Errorf("render booking request email: %w", err)
	}

	return SendRequest{
		To:      to,
		Subject: fmt.Sprintf("Booking request: %s (%s)", r.Team, when),
		HTML:    body.String(),
	}, nil
}

func notesHTML(notes string) template.HTML {
	if notes == "" {
		return ""
	}
	return renderMarkdown(notes)
}
