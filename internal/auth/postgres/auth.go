package postgres

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (int64, string, bool, error) {
	var (
		userID       int64
		passwordHash string
		isActive     bool
	)
	query := `SELECT id, password_hash, is_active FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &isActive); err != nil {
		if err == sql.ErrNoRows {
			return 0, "", false, internal.ErrUserNotFound
		}
		return 0, "", false, err
	}
	return userID, passwordHash, isActive, nil
}

func (r *Repository) GetActorByID(userID int64) (*auth.User, error) {
	var u auth.User
	query := `SELECT id, email, role, manager_id, is_active FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	var managerID sql.NullInt64
	var role string
	if err := row.Scan(&u.ID, &u.Email, &role, &managerID, &u.IsActive); err != nil {
		if err == sql.ErrNoRows {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	u.Role = auth.Role(role)
	if managerID.Valid {
		u.ManagerID = &managerID.Int64
	}
	return &u, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	if err := r.db.Raw(`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateUser(email, passwordHash string, role auth.Role, managerID *int64) (*auth.User, error) {
	err := r.db.Exec(
		`INSERT INTO users (email, password_hash, role, manager_id, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		email, passwordHash, string(role), managerID, true,
	).Error
	if err != nil {
		return nil, err
	}

	var id int64
	if err := r.db.Raw(`SELECT id FROM users WHERE email = ?`, email).Scan(&id).Error; err != nil {
		return nil, err
	}

	return &auth.User{
		ID:        id,
		Email:     email,
		Role:      role,
		ManagerID: managerID,
		IsActive:  true,
	}, nil
}
