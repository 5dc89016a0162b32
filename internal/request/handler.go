package request

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/opsrequests/request-management/internal/auth"
	"github.com/opsrequests/request-management/internal/transport"
	"github.com/opsrequests/request-management/pkg/logger"
)

type ServiceAPI interface {
	ListRequests(actor *auth.User, filter ListFilter) ([]Response, error)
	CreateRequest(actor *auth.User, dto CreateRequestDTO) (*Response, error)
	GetRequestDetail(actor *auth.User, id int64) (*DetailResponse, error)
	UpdateRequest(actor *auth.User, id int64, dto UpdateRequestDTO) (*Response, error)
	CancelRequest(actor *auth.User, id int64) error
	ApproveRequest(actor *auth.User, id int64, dto DecisionDTO) error
	RejectRequest(actor *auth.User, id int64, dto DecisionDTO) error
	ChangeStatus(actor *auth.User, id int64, dto ChangeStatusDTO) error
	AddComment(actor *auth.User, id int64, dto AddCommentDTO) (*CommentResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

// ListRequests returns the requests visible to the caller. Managers without
// an explicit status filter get their pending SUBMITTED queue.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := ListFilter{
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
	}
	if raw := r.URL.Query().Get("typeId"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid typeId parameter")
			return
		}
		filter.TypeID = &typeID
	}

	responses, err := h.Service.ListRequests(actor, filter)
	if err != nil {
		h.Logger.Error("ListRequests: service error", "error", err, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, responses)
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.Service.CreateRequest(actor, dto)
	if err != nil {
		h.Logger.Error("CreateRequest: service error", "error", err, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateRequest: request created",
		"request_id", response.ID,
		"user_id", actor.ID,
		"type_id", dto.TypeID)

	h.WriteJSON(w, http.StatusCreated, response)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	detail, err := h.Service.GetRequestDetail(actor, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var dto UpdateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.Service.UpdateRequest(actor, id, dto)
	if err != nil {
		h.Logger.Error("UpdateRequest: service error", "error", err, "request_id", id, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.Service.CancelRequest(actor, id); err != nil {
		h.Logger.Error("CancelRequest: service error", "error", err, "request_id", id, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CancelRequest: request cancelled", "request_id", id, "user_id", actor.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "request cancelled"})
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "approve", func(actor *auth.User, id int64, dto DecisionDTO) error {
		return h.Service.ApproveRequest(actor, id, dto)
	})
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, "reject", func(actor *auth.User, id int64, dto DecisionDTO) error {
		return h.Service.RejectRequest(actor, id, dto)
	})
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, action string, fn func(*auth.User, int64, DecisionDTO) error) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var dto DecisionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := fn(actor, id, dto); err != nil {
		h.Logger.Error("decision failed", "action", action, "error", err, "request_id", id, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("decision applied", "action", action, "request_id", id, "user_id", actor.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "request " + action + "d"})
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var dto ChangeStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.ChangeStatus(actor, id, dto); err != nil {
		h.Logger.Error("ChangeStatus: service error", "error", err, "request_id", id, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ChangeStatus: status changed", "request_id", id, "status", dto.Status, "user_id", actor.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.requestID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var dto AddCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.Service.AddComment(actor, id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) requestID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
