package request

import (
	"context"
	"log/slog"
	"time"

	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/auth"
	"github.com/opsrequests/request-management/internal/core/events"
	"github.com/opsrequests/request-management/internal/requesttype"
	"github.com/opsrequests/request-management/internal/user"
)

// Repository defines the data access methods for the lifecycle engine. Every
// method that mutates state and takes an AuditEvent must persist both in one
// transaction; Transition additionally performs the status change as a
// conditional write keyed on the expected current status.
type Repository interface {
	Create(req *Request, event *AuditEvent) error
	GetByID(id int64) (*Request, error)
	FindByRequester(requesterID int64) ([]*Request, error)
	FindByManager(managerID int64) ([]*Request, error)
	FindByManagerAndStatus(managerID int64, status Status) ([]*Request, error)
	FindAll() ([]*Request, error)
	UpdateEditableFields(req *Request) error
	Transition(id int64, from, to Status, event *AuditEvent, comment *Comment) error
	AddComment(comment *Comment, event *AuditEvent) error
	CommentsForRequest(requestID int64) ([]*Comment, error)
	AuditEventsForRequest(requestID int64) ([]*AuditEvent, error)
}

// TypeReader resolves request type references.
type TypeReader interface {
	GetByID(id int64) (*requesttype.RequestType, error)
}

// UserReader resolves actor references for response shaping.
type UserReader interface {
	GetByID(userID int64) (*user.User, error)
}

// EventPublisher receives post-commit domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service is the request lifecycle engine. The actor is passed explicitly
// into every operation; authorization and state checks happen here, never in
// the transport layer.
type Service struct {
	repo   Repository
	types  TypeReader
	users  UserReader
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, types TypeReader, users UserReader, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		types:  types,
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

// ListRequests returns the role-scoped, filtered list. The role determines
// the base visible set before any filter applies; that base set is the
// security boundary, the filters are conveniences on top.
func (s *Service) ListRequests(actor *auth.User, filter ListFilter) ([]Response, error) {
	var (
		base []*Request
		err  error
	)

	switch actor.Role {
	case auth.RoleEmployee:
		base, err = s.repo.FindByRequester(actor.ID)
	case auth.RoleManager:
		if filter.Status != "" {
			if status, ok := ParseStatus(filter.Status); ok {
				base, err = s.repo.FindByManagerAndStatus(actor.ID, status)
			} else {
				// Unrecognized status values fall back to the full
				// assigned set for managers rather than erroring.
				base, err = s.repo.FindByManager(actor.ID)
			}
		} else {
			// No filter means the actionable queue: assigned and
			// still awaiting a decision.
			base, err = s.repo.FindByManagerAndStatus(actor.ID, StatusSubmitted)
		}
	case auth.RoleAdmin:
		base, err = s.repo.FindAll()
	default:
		base = nil
	}
	if err != nil {
		s.logger.Error("failed to list requests", "error", err, "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.NewInternalError("failed to list requests", err)
	}

	responses := make([]Response, 0, len(base))
	cache := newSummaryCache(s.users, s.types)
	for _, req := range base {
		// The manager base query already encodes status, so the status
		// filter applies to the other roles only.
		if filter.Status != "" && actor.Role != auth.RoleManager && string(req.Status) != filter.Status {
			continue
		}
		if filter.TypeID != nil && req.TypeID != *filter.TypeID {
			continue
		}
		if filter.Priority != "" && string(req.Priority) != filter.Priority {
			continue
		}
		responses = append(responses, *s.toResponse(req, cache))
	}

	return responses, nil
}

// CreateRequest submits a new request. The requester's manager link is
// snapshotted onto the request so later org changes never move approval
// authority on it.
func (s *Service) CreateRequest(actor *auth.User, dto CreateRequestDTO) (*Response, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.types.GetByID(dto.TypeID); err != nil {
		return nil, internal.ErrRequestTypeNotFound
	}

	now := time.Now()
	req := &Request{
		RequesterID: actor.ID,
		ManagerID:   actor.ManagerID,
		TypeID:      dto.TypeID,
		Title:       dto.Title,
		Description: dto.Description,
		Amount:      dto.Amount,
		Priority:    Priority(dto.Priority),
		Status:      StatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	to := StatusSubmitted
	event := newAuditEvent(0, actor.ID, EventCreated, nil, &to, nil)

	if err := s.repo.Create(req, event); err != nil {
		s.logger.Error("failed to create request", "error", err, "requester_id", actor.ID)
		return nil, internal.NewInternalError("failed to create request", err)
	}

	s.logger.Info("request created",
		"request_id", req.ID,
		"requester_id", actor.ID,
		"type_id", req.TypeID,
		"priority", req.Priority)

	s.publish(EventTypeRequestCreated, req, actor.ID)

	return s.toResponse(req, newSummaryCache(s.users, s.types)), nil
}

// GetRequestDetail returns the request with its ordered comment and audit
// logs. Guarded by the read-access predicate.
func (s *Service) GetRequestDetail(actor *auth.User, id int64) (*DetailResponse, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRequestNotFound
	}

	if !CanView(actor, req) {
		s.logger.Warn("request detail access denied", "request_id", id, "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	comments, err := s.repo.CommentsForRequest(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load comments", err)
	}
	auditEvents, err := s.repo.AuditEventsForRequest(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load audit events", err)
	}

	cache := newSummaryCache(s.users, s.types)
	detail := &DetailResponse{
		Response:    *s.toResponse(req, cache),
		Comments:    make([]CommentResponse, 0, len(comments)),
		AuditEvents: make([]AuditEventResponse, 0, len(auditEvents)),
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, CommentResponse{
			ID:        c.ID,
			Author:    cache.user(c.AuthorID),
			Comment:   c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	for _, e := range auditEvents {
		detail.AuditEvents = append(detail.AuditEvents, AuditEventResponse{
			ID:         e.ID,
			Actor:      cache.user(e.ActorID),
			EventType:  e.EventType,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Note:       e.Note,
			CreatedAt:  e.CreatedAt,
		})
	}

	return detail, nil
}

// UpdateRequest mutates the editable fields. Requester only, and only while
// the request is still SUBMITTED.
func (s *Service) UpdateRequest(actor *auth.User, id int64, dto UpdateRequestDTO) (*Response, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRequestNotFound
	}

	if appErr := checkRequesterAccess(actor, req); appErr != nil {
		return nil, appErr
	}
	if !req.Editable() {
		return nil, internal.NewCannotModifyError("update", string(req.Status))
	}

	if _, err := s.types.GetByID(dto.TypeID); err != nil {
		return nil, internal.ErrRequestTypeNotFound
	}

	req.TypeID = dto.TypeID
	req.Title = dto.Title
	req.Description = dto.Description
	req.Amount = dto.Amount
	req.Priority = Priority(dto.Priority)
	req.UpdatedAt = time.Now()

	if err := s.repo.UpdateEditableFields(req); err != nil {
		return nil, err
	}

	return s.toResponse(req, newSummaryCache(s.users, s.types)), nil
}

// CancelRequest is requester-only, including for admins; that matches the
// product behavior this engine replaces.
func (s *Service) CancelRequest(actor *auth.User, id int64) error {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrRequestNotFound
	}

	if appErr := checkRequesterAccess(actor, req); appErr != nil {
		return appErr
	}
	if req.Status != StatusSubmitted {
		return internal.NewCannotModifyError("cancel", string(req.Status))
	}

	from, to := StatusSubmitted, StatusCancelled
	event := newAuditEvent(req.ID, actor.ID, EventCancelled, &from, &to, nil)

	if err := s.repo.Transition(req.ID, from, to, event, nil); err != nil {
		return err
	}

	s.logger.Info("request cancelled", "request_id", id, "actor_id", actor.ID)

	req.Status = to
	s.publish(EventTypeRequestCancelled, req, actor.ID)
	return nil
}

// ApproveRequest moves SUBMITTED → APPROVED. The mandatory comment and the
// single audit event commit with the status change or not at all.
func (s *Service) ApproveRequest(actor *auth.User, id int64, dto DecisionDTO) error {
	return s.decide(actor, id, dto, StatusApproved, EventApproved, EventTypeRequestApproved)
}

// RejectRequest moves SUBMITTED → REJECTED, same coupling as approve.
func (s *Service) RejectRequest(actor *auth.User, id int64, dto DecisionDTO) error {
	return s.decide(actor, id, dto, StatusRejected, EventRejected, EventTypeRequestRejected)
}

func (s *Service) decide(actor *auth.User, id int64, dto DecisionDTO, target Status, eventType EventType, domainEvent string) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeCommentRequired)
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrRequestNotFound
	}

	if appErr := CheckDecisionAccess(actor, req); appErr != nil {
		s.logger.Warn("decision access denied",
			"request_id", id,
			"actor_id", actor.ID,
			"role", actor.Role,
			"assigned_manager", req.ManagerID)
		return appErr
	}
	if req.Status != StatusSubmitted {
		return internal.NewInvalidStateError(string(req.Status), string(target))
	}

	from := StatusSubmitted
	note := dto.Comment
	event := newAuditEvent(req.ID, actor.ID, eventType, &from, &target, &note)
	comment := &Comment{
		RequestID: req.ID,
		AuthorID:  actor.ID,
		Text:      dto.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Transition(req.ID, from, target, event, comment); err != nil {
		return err
	}

	s.logger.Info("request decision recorded",
		"request_id", id,
		"actor_id", actor.ID,
		"status", target)

	req.Status = target
	s.publish(domainEvent, req, actor.ID)
	return nil
}

// ChangeStatus advances an approved request through execution. Admin only;
// the only legal moves are APPROVED → IN_PROGRESS and IN_PROGRESS → DONE.
func (s *Service) ChangeStatus(actor *auth.User, id int64, dto ChangeStatusDTO) error {
	if !actor.IsAdmin() {
		return internal.NewForbiddenError("only admins can change request status", internal.ErrCodeAccessDenied)
	}

	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	target, _ := ParseStatus(dto.Status)

	req, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrRequestNotFound
	}

	if !CanAdminTransition(req.Status, target) {
		return internal.NewInvalidStateError(string(req.Status), string(target))
	}

	from := req.Status
	event := newAuditEvent(req.ID, actor.ID, EventStatusChanged, &from, &target, dto.Note)

	if err := s.repo.Transition(req.ID, from, target, event, nil); err != nil {
		return err
	}

	s.logger.Info("request status changed",
		"request_id", id,
		"actor_id", actor.ID,
		"from", from,
		"to", target)

	req.Status = target
	s.publish(EventTypeRequestStatusChanged, req, actor.ID)
	return nil
}

// AddComment appends one comment plus its COMMENT_ADDED audit record. Guarded
// by the read-access predicate; comments never mutate the request itself.
func (s *Service) AddComment(actor *auth.User, id int64, dto AddCommentDTO) (*CommentResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeCommentRequired)
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRequestNotFound
	}

	if !CanView(actor, req) {
		s.logger.Warn("comment access denied", "request_id", id, "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	comment := &Comment{
		RequestID: req.ID,
		AuthorID:  actor.ID,
		Text:      dto.Comment,
		CreatedAt: time.Now(),
	}
	note := dto.Comment
	event := newAuditEvent(req.ID, actor.ID, EventCommentAdded, nil, nil, &note)

	if err := s.repo.AddComment(comment, event); err != nil {
		s.logger.Error("failed to add comment", "error", err, "request_id", id)
		return nil, internal.NewInternalError("failed to add comment", err)
	}

	s.publish(EventTypeRequestCommented, req, actor.ID)

	cache := newSummaryCache(s.users, s.types)
	return &CommentResponse{
		ID:        comment.ID,
		Author:    cache.user(comment.AuthorID),
		Comment:   comment.Text,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *Service) publish(eventType string, req *Request, actorID int64) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), newDomainEvent(eventType, req, actorID)); err != nil {
		s.logger.Error("failed to publish domain event", "error", err, "event_type", eventType, "request_id", req.ID)
	}
}

// summaryCache memoizes user/type lookups while shaping one response batch.
type summaryCache struct {
	users UserReader
	types TypeReader
	u     map[int64]*UserSummary
	t     map[int64]*requesttype.RequestType
}

func newSummaryCache(users UserReader, types TypeReader) *summaryCache {
	return &summaryCache{
		users: users,
		types: types,
		u:     make(map[int64]*UserSummary),
		t:     make(map[int64]*requesttype.RequestType),
	}
}

func (c *summaryCache) user(id int64) *UserSummary {
	if s, ok := c.u[id]; ok {
		return s
	}
	u, err := c.users.GetByID(id)
	if err != nil {
		c.u[id] = nil
		return nil
	}
	s := &UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		ManagerID: u.ManagerID,
		Active:    u.IsActive,
	}
	c.u[id] = s
	return s
}

func (c *summaryCache) requestType(id int64) *requesttype.RequestType {
	if t, ok := c.t[id]; ok {
		return t
	}
	t, err := c.types.GetByID(id)
	if err != nil {
		c.t[id] = nil
		return nil
	}
	c.t[id] = t
	return t
}

func (s *Service) toResponse(req *Request, cache *summaryCache) *Response {
	resp := &Response{
		ID:          req.ID,
		Requester:   cache.user(req.RequesterID),
		Type:        cache.requestType(req.TypeID),
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Priority:    req.Priority,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
	if req.ManagerID != nil {
		resp.Manager = cache.user(*req.ManagerID)
	}
	return resp
}
