package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/requesttype"
)

// Repository implements requesttype.RepositoryAPI using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) requesttype.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetAll() ([]*requesttype.RequestType, error) {
	var types []*requesttype.RequestType
	err := r.db.Order("code ASC").Find(&types).Error
	return types, err
}

func (r *Repository) GetActive() ([]*requesttype.RequestType, error) {
	var types []*requesttype.RequestType
	err := r.db.Where("is_active = ?", true).Order("code ASC").Find(&types).Error
	return types, err
}

func (r *Repository) GetByID(id int64) (*requesttype.RequestType, error) {
	var t requesttype.RequestType
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&requesttype.RequestType{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *Repository) Create(t *requesttype.RequestType) error {
	return r.db.Create(t).Error
}

func (r *Repository) Update(t *requesttype.RequestType) error {
	return r.db.Save(t).Error
}
