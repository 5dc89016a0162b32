package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the single lifecycle field of a request. Transitions only ever
// happen through the rules below; nothing writes the column directly.
type Status string

const (
	StatusSubmitted  Status = "SUBMITTED"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
	StatusCancelled  Status = "CANCELLED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusSubmitted, StatusApproved, StatusRejected, StatusCancelled, StatusInProgress, StatusDone:
		return Status(s), true
	}
	return "", false
}

// IsTerminal reports whether no further transition is valid from s.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusDone
}

// adminTransitions are the execution-phase moves only an admin may trigger.
var adminTransitions = map[Status]Status{
	StatusApproved:   StatusInProgress,
	StatusInProgress: StatusDone,
}

// CanAdminTransition reports whether from → to is a permitted admin
// change-status move.
func CanAdminTransition(from, to Status) bool {
	next, ok := adminTransitions[from]
	return ok && next == to
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// Request is the central entity. RequesterID is immutable after creation.
// ManagerID is a snapshot of the requester's manager taken at creation time;
// later org changes never move approval authority on existing requests.
type Request struct {
	ID          int64                `json:"id" gorm:"primaryKey"`
	RequesterID int64                `json:"requester_id" gorm:"column:requester_id;not null"`
	ManagerID   *int64               `json:"manager_id,omitempty" gorm:"column:manager_id"`
	TypeID      int64                `json:"type_id" gorm:"column:type_id;not null"`
	Title       string               `json:"title" gorm:"not null"`
	Description string               `json:"description"`
	Amount      *decimal.Decimal     `json:"amount,omitempty" gorm:"type:numeric(14,2)"`
	Priority    Priority             `json:"priority" gorm:"not null"`
	Status      Status               `json:"status" gorm:"not null;default:SUBMITTED"`
	CreatedAt   time.Time            `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time            `json:"updated_at" gorm:"column:updated_at"`
}

func (Request) TableName() string {
	return "requests"
}

// Editable reports whether the requester may still mutate business fields.
func (r *Request) Editable() bool {
	return r.Status == StatusSubmitted
}

// Comment is an append-only human-authored note on a request. Never edited
// or deleted.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	RequestID int64     `json:"request_id" gorm:"column:request_id;not null"`
	AuthorID  int64     `json:"author_id" gorm:"column:author_id;not null"`
	Text      string    `json:"comment" gorm:"column:comment;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Comment) TableName() string {
	return "request_comments"
}

// EventType classifies one audit event.
type EventType string

const (
	EventCreated       EventType = "CREATED"
	EventApproved      EventType = "APPROVED"
	EventRejected      EventType = "REJECTED"
	EventStatusChanged EventType = "STATUS_CHANGED"
	EventCommentAdded  EventType = "COMMENT_ADDED"
	EventCancelled     EventType = "CANCELLED"
)

// AuditEvent is one immutable history record. Every state-changing action
// writes exactly one, in the same transaction as the mutation.
type AuditEvent struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	RequestID  int64     `json:"request_id" gorm:"column:request_id;not null"`
	ActorID    int64     `json:"actor_id" gorm:"column:actor_id;not null"`
	EventType  EventType `json:"event_type" gorm:"column:event_type;not null"`
	FromStatus *string   `json:"from_status,omitempty" gorm:"column:from_status"`
	ToStatus   *string   `json:"to_status,omitempty" gorm:"column:to_status"`
	Note       *string   `json:"note,omitempty" gorm:"column:note"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

func (AuditEvent) TableName() string {
	return "request_audit_events"
}

func newAuditEvent(requestID, actorID int64, eventType EventType, fromStatus, toStatus *Status, note *string) *AuditEvent {
	event := &AuditEvent{
		RequestID: requestID,
		ActorID:   actorID,
		EventType: eventType,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if fromStatus != nil {
		s := string(*fromStatus)
		event.FromStatus = &s
	}
	if toStatus != nil {
		s := string(*toStatus)
		event.ToStatus = &s
	}
	return event
}
