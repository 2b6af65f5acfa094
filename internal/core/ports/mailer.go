package ports

import "context"

// EmailMessage is a plain-text email to a single recipient.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a single message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// MailDispatcher accepts messages for asynchronous, fire-and-forget delivery.
// Delivery failures are logged by the dispatcher and never surface to callers.
type MailDispatcher interface {
	Enqueue(msg EmailMessage)
}
