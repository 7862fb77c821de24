package notification

import (
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridNotifier struct {
	log     logger.Log
	key     string
	appName string
	from    *sgmail.Email
}

func NewSendgridNotifier(log logger.Log, key, fromName, fromEmail string) *SendgridNotifier {
	return &SendgridNotifier{
		log:     log,
		key:     key,
		appName: fromName,
		from:    sgmail.NewEmail(fromName, fromEmail),
	}
}

func (n *SendgridNotifier) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)
	return m
}

func (n *SendgridNotifier) SendDigest(ctx context.Context, recipient models.ReminderRecipient) error {
	msg, err := RenderDigest(n.appName, recipient)
	if err != nil {
		return err
	}

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(n.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid returned %d: %s", res.StatusCode, res.Body)
	}
	n.log.Debug("reminder sent", "student_id", recipient.StudentID, "tasks", len(recipient.Tasks))
	return nil
}
