package service

import (
	"bytes"
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	"fmt"
	"text/template"
)

// EmailService renders and sends the emails the app produces. Delivery goes
// through EmailRepository so nothing here knows about SES.
type EmailService interface {
	// NotifyContactMessage tells the inbox a contact message arrived.
	// Delivery failures are logged and swallowed so the caller's request
	// still succeeds.
	NotifyContactMessage(ctx context.Context, msg model.ContactMessage, user *model.UserAccount)

	GenerateContactEmail(msg model.ContactMessage, user *model.UserAccount) (string, string, error)
}

type emailServiceHandler struct {
	EmailRepository repository.EmailRepository
	ContactInbox    string
}

// NewEmailService returns a service that drops every email when either
// emailRepository or contactInbox is unset.
func NewEmailService(
	emailRepository repository.EmailRepository,
	contactInbox string,
) EmailService {
	return &emailServiceHandler{
		EmailRepository: emailRepository,
		ContactInbox:    contactInbox,
	}
}

var contactEmailTemplate = template.Must(template.New("contact").Parse(`New contact message ({{ .MessageID }})

From: {{ .From }}
Reply to: {{ .ReplyTo }}
Received: {{ .Received }}

{{ .Content }}
`))

func (h *emailServiceHandler) GenerateContactEmail(msg model.ContactMessage, user *model.UserAccount) (string, string, error) {
	from := "anonymous"
	if user != nil {
		if user.Email != nil {
			from = *user.Email
		} else {
			from = user.UserAccountID.String()
		}
	} else if msg.UserID != nil {
		from = "visitor " + msg.UserID.String()
	}
	replyTo := "not provided"
	if msg.ReplyEmail != nil && *msg.ReplyEmail != "" {
		replyTo = *msg.ReplyEmail
	}

	var buf bytes.Buffer
	err := contactEmailTemplate.Execute(&buf, map[string]any{
		"MessageID": msg.MessageID.String(),
		"From":      from,
		"ReplyTo":   replyTo,
		"Received":  msg.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
		"Content":   msg.Content,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render contact email: %w", err)
	}

	return fmt.Sprintf("Contact message from %s", from), buf.String(), nil
}

func (h *emailServiceHandler) NotifyContactMessage(ctx context.Context, msg model.ContactMessage, user *model.UserAccount) {
	log := logger.FromContext(ctx)
	if h.EmailRepository == nil || h.ContactInbox == "" {
		log.Debug("email not configured, skipping contact notification")
		return
	}

	subject, body, err := h.GenerateContactEmail(msg, user)
	if err != nil {
		log.Errorf("failed to generate contact email: %v", err)
		return
	}
	if err := h.EmailRepository.SendEmail(ctx, h.ContactInbox, subject, body); err != nil {
		log.Errorf("failed to send contact email for %s: %v", msg.MessageID.String(), err)
	}
}
