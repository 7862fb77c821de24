package notification

import (
	"LearnHub/internal/models"
	"bytes"
	"fmt"
	htmltmpl "html/template"
	texttmpl "text/template"
)

// Message is a rendered reminder email.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

const digestText = `Hi {{.DisplayName}},

These tasks are due soon:
{{range .Tasks}}- {{.Title}} ({{.CourseName}}), due {{.DueDate.Format "Mon, 02 Jan 15:04"}}{{if eq .DaysLeft 0}}, today{{else}}, in {{.DaysLeft}} day(s){{end}}
{{end}}`

const digestHTML = `<p>Hi {{.DisplayName}},</p>
<p>These tasks are due soon:</p>
<ul>
{{range .Tasks}}<li><strong>{{.Title}}</strong> ({{.CourseName}}), due {{.DueDate.Format "Mon, 02 Jan 15:04"}}{{if eq .DaysLeft 0}}, today{{else}}, in {{.DaysLeft}} day(s){{end}}</li>
{{end}}</ul>`

var (
	textTmpl = texttmpl.Must(texttmpl.New("digest.txt").Parse(digestText))
	htmlTmpl = htmltmpl.Must(htmltmpl.New("digest.gohtml").Parse(digestHTML))
)

// RenderDigest builds the reminder email for one student.
func RenderDigest(appName string, recipient models.ReminderRecipient) (Message, error) {
	var text, html bytes.Buffer
	if err := textTmpl.Execute(&text, recipient); err != nil {
		return Message{}, fmt.Errorf("render digest text: %w", err)
	}
	if err := htmlTmpl.Execute(&html, recipient); err != nil {
		return Message{}, fmt.Errorf("render digest html: %w", err)
	}
	subject := fmt.Sprintf("[%s] %d task(s) due soon", appName, len(recipient.Tasks))
	return Message{
		ToName:  recipient.DisplayName,
		ToEmail: recipient.Email,
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
