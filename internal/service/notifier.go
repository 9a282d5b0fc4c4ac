package service

import (
	"context"
	"fmt"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/ws"
)

// NotificationSink is the durable side of the fan-out: an append to the
// user's notification log.
type NotificationSink interface {
	Append(ctx context.Context, userID int64, typ, message string) (*domain.Notification, error)
}

// EventPublisher is the live side: best-effort, no durability guarantee.
type EventPublisher interface {
	Publish(userID int64, ev ws.Event)
}

// Notifier fans a task event out to a set of users: durable append first,
// live push second. The two sinks fail independently; neither failure is
// surfaced to the task mutation that triggered the fan-out, only logged.
// A failed append skips the push for that user so the live hint never
// outruns the durable log.
type Notifier struct {
	log  NotificationSink
	push EventPublisher
}

func NewNotifier(log NotificationSink, push EventPublisher) *Notifier {
	return &Notifier{log: log, push: push}
}

// TaskShared notifies every explicitly named share target — even targets
// that were already members of sharedWith before the call.
func (n *Notifier) TaskShared(ctx context.Context, t *domain.Task, targets []int64) {
	msg := fmt.Sprintf("A task %q was shared with you.", t.Title)
	n.fanOut(ctx, domain.EventTaskShared, msg, targets)
}

// TaskUpdated notifies every current member of sharedWith, the actor
// included, that the task status changed.
func (n *Notifier) TaskUpdated(ctx context.Context, t *domain.Task) {
	msg := fmt.Sprintf("Task %q status updated to %s.", t.Title, t.Status)
	n.fanOut(ctx, domain.EventTaskUpdated, msg, t.SharedWith)
}

func (n *Notifier) fanOut(ctx context.Context, typ, msg string, userIDs []int64) {
	for _, uid := range userIDs {
		note, err := n.log.Append(ctx, uid, typ, msg)
		if err != nil {
			logger.Error("notification append failed", "user_id", uid, "type", typ, "error", err)
			continue
		}
		n.push.Publish(uid, ws.Event{Type: typ, Message: note.Message, Date: note.CreatedAt})
	}
}
