package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/request"
)

// Repository implements request.Repository using GORM. Every state-changing
// method runs one transaction; the status mutation itself is a conditional
// update keyed on the expected current status, so a concurrent transition
// makes the second writer fail instead of double-applying.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) request.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(req *request.Request, event *request.AuditEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		event.RequestID = req.ID
		return tx.Create(event).Error
	})
}

func (r *Repository) GetByID(id int64) (*request.Request, error) {
	var req request.Request
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *Repository) FindByRequester(requesterID int64) ([]*request.Request, error) {
	var reqs []*request.Request
	err := r.db.Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *Repository) FindByManager(managerID int64) ([]*request.Request, error) {
	var reqs []*request.Request
	err := r.db.Where("manager_id = ?", managerID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *Repository) FindByManagerAndStatus(managerID int64, status request.Status) ([]*request.Request, error) {
	var reqs []*request.Request
	err := r.db.Where("manager_id = ? AND status = ?", managerID, status).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *Repository) FindAll() ([]*request.Request, error) {
	var reqs []*request.Request
	err := r.db.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

// UpdateEditableFields writes the mutable business fields, guarded on the
// request still being SUBMITTED at write time.
func (r *Repository) UpdateEditableFields(req *request.Request) error {
	result := r.db.Model(&request.Request{}).
		Where("id = ? AND status = ?", req.ID, request.StatusSubmitted).
		Updates(map[string]interface{}{
			"type_id":     req.TypeID,
			"title":       req.Title,
			"description": req.Description,
			"amount":      req.Amount,
			"priority":    req.Priority,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.staleWriteError(req.ID, "update")
	}
	return nil
}

// Transition performs the atomic check-and-set status change and appends the
// audit event, and the comment when the operation carries one, in the same
// transaction. Zero rows affected means the status moved under us (or the
// row vanished); the transaction aborts and nothing is committed.
func (r *Repository) Transition(id int64, from, to request.Status, event *request.AuditEvent, comment *request.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&request.Request{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]interface{}{
				"status":     to,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.staleTransitionError(tx, id, to)
		}

		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if comment != nil {
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) AddComment(comment *request.Comment, event *request.AuditEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Create(event).Error
	})
}

func (r *Repository) CommentsForRequest(requestID int64) ([]*request.Comment, error) {
	var comments []*request.Comment
	err := r.db.Where("request_id = ?", requestID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *Repository) AuditEventsForRequest(requestID int64) ([]*request.AuditEvent, error) {
	var auditEvents []*request.AuditEvent
	err := r.db.Where("request_id = ?", requestID).
		Order("created_at ASC, id ASC").
		Find(&auditEvents).Error
	return auditEvents, err
}

func (r *Repository) staleTransitionError(tx *gorm.DB, id int64, attempted request.Status) error {
	var current request.Request
	if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrRequestNotFound
		}
		return err
	}
	return internal.NewInvalidStateError(string(current.Status), string(attempted))
}

func (r *Repository) staleWriteError(id int64, operation string) error {
	var current request.Request
	if err := r.db.Where("id = ?", id).First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrRequestNotFound
		}
		return err
	}
	return internal.NewCannotModifyError(operation, string(current.Status))
}
