// Package notify delivers fire-and-forget side effects (notifications and
// emails) on a background worker so the request path never waits on them.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/akithw/supermart-golang/internal/store"
	"go.uber.org/zap"
)

// EmailSender sends one HTML email. Implementations live in internal/email.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

const (
	taskNotification = "notification"
	taskEmail        = "email"

	maxAttempts = 3
)

type task struct {
	kind         string
	notification models.Notification
	to, subject  string
	body         string
}

// Notifier owns a bounded task queue and one delivery worker. Failed tasks
// are retried with backoff and dropped after maxAttempts; a full queue drops
// the task immediately rather than blocking the caller.
type Notifier struct {
	queue         chan task
	notifications store.NotificationStore
	email         EmailSender
	logger        *zap.Logger
	retryDelay    time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func New(notifications store.NotificationStore, email EmailSender, logger *zap.Logger, queueSize int) *Notifier {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Notifier{
		queue:         make(chan task, queueSize),
		notifications: notifications,
		email:         email,
		logger:        logger,
		retryDelay:    250 * time.Millisecond,
	}
}

// Start launches the delivery worker.
func (n *Notifier) Start() {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for t := range n.queue {
			n.deliver(t)
		}
	}()
}

// Stop drains the queue and waits for the worker to finish.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}

// QueueNotification enqueues a user notification. Never blocks.
func (n *Notifier) QueueNotification(title, message, userID string) {
	n.enqueue(task{
		kind: taskNotification,
		notification: models.Notification{
			Title:   title,
			Message: message,
			UserID:  userID,
		},
	})
}

// QueueEmail enqueues an email. Never blocks.
func (n *Notifier) QueueEmail(to, subject, htmlBody string) {
	n.enqueue(task{kind: taskEmail, to: to, subject: subject, body: htmlBody})
}

func (n *Notifier) enqueue(t task) {
	select {
	case n.queue <- t:
	default:
		n.logger.Warn("notify queue full, task dropped", zap.String("kind", t.kind))
	}
}

func (n *Notifier) deliver(t task) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		switch t.kind {
		case taskNotification:
			err = n.notifications.Create(context.Background(), t.notification)
		case taskEmail:
			err = n.email.Send(t.to, t.subject, t.body)
		}
		if err == nil {
			return
		}
		if attempt < maxAttempts {
			time.Sleep(n.retryDelay * time.Duration(attempt))
		}
	}
	n.logger.Error("side effect dropped after retries",
		zap.String("kind", t.kind),
		zap.Error(err),
	)
}
