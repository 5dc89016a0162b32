package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(userID int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetAll() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("email ASC").Find(&users).Error
	return users, err
}
