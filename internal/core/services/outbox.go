package services

import (
	"context"

	"edumigrate/internal/adapters/persistence/models"
)

type outboxEmail struct {
	To       string
	Subject  string
	Template string
	Context  map[string]interface{}
}

// outbox buffers side effects recorded during a transaction so they are
// delivered only after a successful commit. A rolled back transaction
// simply drops the buffer.
type outbox struct {
	notes  []models.Notification
	emails []outboxEmail
}

func (b *outbox) notify(n models.Notification) {
	b.notes = append(b.notes, n)
}

func (b *outbox) email(to, subject, template string, emailContext map[string]interface{}) {
	if to == "" {
		return
	}
	b.emails = append(b.emails, outboxEmail{
		To:       to,
		Subject:  subject,
		Template: template,
		Context:  emailContext,
	})
}

// dispatch delivers the buffered side effects. Delivery failures are
// logged by the receiving services and never surfaced to the caller.
func (b *outbox) dispatch(ctx context.Context, notifyService *NotifyService, emailService *EmailService) {
	for i := range b.notes {
		notifyService.Push(ctx, &b.notes[i])
	}
	for _, e := range b.emails {
		emailService.SendAsync(e.To, e.Subject, e.Template, e.Context)
	}
}
