package requesttype

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/opsrequests/request-management/internal/transport"
	"github.com/opsrequests/request-management/pkg/logger"
)

type ServiceAPI interface {
	GetActiveTypes() ([]*RequestType, error)
	GetAllTypes() ([]*RequestType, error)
	GetByID(id int64) (*RequestType, error)
	CreateType(dto CreateTypeDTO) (*RequestType, error)
	UpdateType(id int64, dto UpdateTypeDTO) (*RequestType, error)
	DeactivateType(id int64) error
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

// GetTypes lists the active types offered for new requests. The all flag
// includes deactivated types for the admin management view.
func (h *Handler) GetTypes(w http.ResponseWriter, r *http.Request) {
	var (
		types []*RequestType
		err   error
	)
	if r.URL.Query().Get("all") == "true" {
		types, err = h.Service.GetAllTypes()
	} else {
		types, err = h.Service.GetActiveTypes()
	}
	if err != nil {
		h.Logger.Error("GetTypes: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"types": types})
}

func (h *Handler) CreateType(w http.ResponseWriter, r *http.Request) {
	var dto CreateTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.CreateType(dto)
	if err != nil {
		h.Logger.Error("CreateType: service error", "error", err, "code", dto.Code)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, err := h.typeID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request type ID")
		return
	}

	var dto UpdateTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.UpdateType(id, dto)
	if err != nil {
		h.Logger.Error("UpdateType: service error", "error", err, "type_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, err := h.typeID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request type ID")
		return
	}

	if err := h.Service.DeactivateType(id); err != nil {
		h.Logger.Error("DeleteType: service error", "error", err, "type_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) typeID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
