package user

import (
	"time"

	"github.com/opsrequests/request-management/internal/auth"
)

// User is the stored identity. Role and manager link are fixed at
// registration; there is no reassignment flow in this system.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         auth.Role `json:"role" gorm:"not null"`
	ManagerID    *int64    `json:"manager_id,omitempty" gorm:"column:manager_id"`
	IsActive     bool      `json:"active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ToActor converts the stored entity into the context actor shape.
func (u *User) ToActor() *auth.User {
	return &auth.User{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		ManagerID: u.ManagerID,
		IsActive:  u.IsActive,
	}
}
