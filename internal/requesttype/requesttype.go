package requesttype

import (
	"errors"
	"time"
)

// RequestType is reference data: code is unique and immutable once created,
// name is mutable, deactivation is the only form of deletion. Requests issued
// against a later-deactivated type stay valid and readable.
type RequestType struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	IsActive  bool      `json:"active" gorm:"column:is_active;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (RequestType) TableName() string {
	return "request_types"
}

func (t *RequestType) Deactivate() {
	t.IsActive = false
	t.UpdatedAt = time.Now()
}

func NewRequestType(code, name string) *RequestType {
	now := time.Now()
	return &RequestType{
		Code:      code,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTypeDTO is the admin payload for adding a request type.
type CreateTypeDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (dto CreateTypeDTO) Validate() error {
	if dto.Code == "" {
		return errors.New("code is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateTypeDTO mutates name and, when set, the active flag. Code never
// changes after creation.
type UpdateTypeDTO struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

func (dto UpdateTypeDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
