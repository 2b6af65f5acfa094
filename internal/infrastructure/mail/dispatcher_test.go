package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jigyasu/commerce-system/internal/core/ports"
)

// recordingMailer captures sent messages and optionally fails.
type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
	err  error
	done chan struct{}
}

func newRecordingMailer(expected int) *recordingMailer {
	return &recordingMailer{done: make(chan struct{}, expected)}
}

func (m *recordingMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

func (m *recordingMailer) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-m.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversEnqueuedMessages(t *testing.T) {
	mailer := newRecordingMailer(2)
	d := NewDispatcher(2, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.EmailMessage{To: "a@x.com", Subject: "one"})
	d.Enqueue(ports.EmailMessage{To: "b@x.com", Subject: "two"})

	mailer.wait(t, 2)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(mailer.sent))
	}
}

func TestDispatcher_SameRecipientKeepsOrder(t *testing.T) {
	mailer := newRecordingMailer(3)
	d := NewDispatcher(4, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, subject := range []string{"first", "second", "third"} {
		d.Enqueue(ports.EmailMessage{To: "alice@x.com", Subject: subject})
	}

	mailer.wait(t, 3)

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	for i, want := range []string{"first", "second", "third"} {
		if mailer.sent[i].Subject != want {
			t.Fatalf("delivery %d: expected %q, got %q", i, want, mailer.sent[i].Subject)
		}
	}
}

func TestDispatcher_DeliveryFailureDoesNotStopWorker(t *testing.T) {
	mailer := newRecordingMailer(2)
	mailer.err = errors.New("smtp down")
	d := NewDispatcher(1, mailer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.EmailMessage{To: "a@x.com"})
	d.Enqueue(ports.EmailMessage{To: "b@x.com"})

	// Both attempts happen even though every delivery fails.
	mailer.wait(t, 2)
}
