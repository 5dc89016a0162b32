package notification

import (
	"context"
	"log/slog"

	"github.com/opsrequests/request-management/internal/core/events"
	"github.com/opsrequests/request-management/internal/request"
)

// Notifier reacts to request lifecycle events. Today it only emits structured
// log lines; a real channel (email, chat webhook) plugs in behind the same
// subscription without touching the lifecycle engine.
type Notifier struct {
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Register subscribes the notifier to every lifecycle event type.
func (n *Notifier) Register(bus *events.EventBus) {
	for _, eventType := range []string{
		request.EventTypeRequestCreated,
		request.EventTypeRequestApproved,
		request.EventTypeRequestRejected,
		request.EventTypeRequestCancelled,
		request.EventTypeRequestStatusChanged,
		request.EventTypeRequestCommented,
	} {
		bus.Subscribe(eventType, n.handle)
	}
}

func (n *Notifier) handle(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload().(map[string]interface{})

	n.logger.Info("notification dispatched",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"request_id", payload["request_id"],
		"requester_id", payload["requester_id"],
		"status", payload["status"],
		"actor_id", payload["actor_id"],
	)
	return nil
}
