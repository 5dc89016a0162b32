package request

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opsrequests/request-management/internal/auth"
	"github.com/opsrequests/request-management/internal/requesttype"
)

// CreateRequestDTO is the payload for submitting a new request.
type CreateRequestDTO struct {
	TypeID      int64            `json:"type_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Priority    string           `json:"priority"`
}

func (dto CreateRequestDTO) Validate() error {
	if dto.TypeID <= 0 {
		return errors.New("type_id is required")
	}
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 200 {
		return errors.New("title must be less than 200 characters")
	}
	if _, ok := ParsePriority(dto.Priority); !ok {
		return errors.New("priority must be one of LOW, MEDIUM, HIGH")
	}
	if dto.Amount != nil && dto.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	return nil
}

// UpdateRequestDTO mutates the editable fields; only valid while the request
// is still SUBMITTED and only for the requester.
type UpdateRequestDTO struct {
	TypeID      int64            `json:"type_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Priority    string           `json:"priority"`
}

func (dto UpdateRequestDTO) Validate() error {
	return CreateRequestDTO(dto).Validate()
}

// DecisionDTO carries the mandatory comment for approve/reject.
type DecisionDTO struct {
	Comment string `json:"comment"`
}

func (dto DecisionDTO) Validate() error {
	if dto.Comment == "" {
		return errors.New("comment is required")
	}
	return nil
}

// ChangeStatusDTO advances an approved request through execution. Admin only.
type ChangeStatusDTO struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

func (dto ChangeStatusDTO) Validate() error {
	if _, ok := ParseStatus(dto.Status); !ok {
		return errors.New("status is not a recognized value")
	}
	return nil
}

// AddCommentDTO appends one comment to the log.
type AddCommentDTO struct {
	Comment string `json:"comment"`
}

func (dto AddCommentDTO) Validate() error {
	if dto.Comment == "" {
		return errors.New("comment is required")
	}
	return nil
}

// ListFilter holds the optional list filters. Empty strings mean no filter.
type ListFilter struct {
	Status   string
	TypeID   *int64
	Priority string
}

// UserSummary is the embedded actor shape in responses.
type UserSummary struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	ManagerID *int64    `json:"manager_id,omitempty"`
	Active    bool      `json:"active"`
}

// Response is the list/detail shape for one request.
type Response struct {
	ID          int64                      `json:"id"`
	Requester   *UserSummary               `json:"requester,omitempty"`
	Manager     *UserSummary               `json:"manager,omitempty"`
	Type        *requesttype.RequestType   `json:"type,omitempty"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Amount      *decimal.Decimal           `json:"amount,omitempty"`
	Priority    Priority                   `json:"priority"`
	Status      Status                     `json:"status"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// DetailResponse adds the two ordered logs.
type DetailResponse struct {
	Response
	Comments    []CommentResponse    `json:"comments"`
	AuditEvents []AuditEventResponse `json:"audit_events"`
}

type CommentResponse struct {
	ID        int64        `json:"id"`
	Author    *UserSummary `json:"author,omitempty"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
}

type AuditEventResponse struct {
	ID         int64        `json:"id"`
	Actor      *UserSummary `json:"actor,omitempty"`
	EventType  EventType    `json:"event_type"`
	FromStatus *string      `json:"from_status,omitempty"`
	ToStatus   *string      `json:"to_status,omitempty"`
	Note       *string      `json:"note,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}
