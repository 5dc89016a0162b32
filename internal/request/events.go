package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsrequests/request-management/internal/core/events"
)

// Domain event types published to the in-process bus after a lifecycle
// mutation commits. Subscribers (notifications, digests) must treat them as
// informational; the audit trail in the store is the canonical history.
const (
	EventTypeRequestCreated       = "request.created"
	EventTypeRequestApproved      = "request.approved"
	EventTypeRequestRejected      = "request.rejected"
	EventTypeRequestCancelled     = "request.cancelled"
	EventTypeRequestStatusChanged = "request.status_changed"
	EventTypeRequestCommented     = "request.comment_added"
)

func newDomainEvent(eventType string, req *Request, actorID int64) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"request_id":   req.ID,
			"requester_id": req.RequesterID,
			"status":       string(req.Status),
			"actor_id":     actorID,
		},
	}
}
