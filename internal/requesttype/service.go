package requesttype

import (
	"log/slog"
	"time"

	"github.com/opsrequests/request-management/internal"
)

// RepositoryAPI defines the data access methods for request types.
type RepositoryAPI interface {
	GetAll() ([]*RequestType, error)
	GetActive() ([]*RequestType, error)
	GetByID(id int64) (*RequestType, error)
	ExistsByCode(code string) (bool, error)
	Create(t *RequestType) error
	Update(t *RequestType) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetActiveTypes lists the types offered when creating a new request.
// Deactivated types are excluded here but stay resolvable by id.
func (s *Service) GetActiveTypes() ([]*RequestType, error) {
	types, err := s.repo.GetActive()
	if err != nil {
		s.logger.Error("failed to list active request types", "error", err)
		return nil, internal.NewInternalError("failed to list request types", err)
	}
	return types, nil
}

func (s *Service) GetAllTypes() ([]*RequestType, error) {
	types, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list request types", "error", err)
		return nil, internal.NewInternalError("failed to list request types", err)
	}
	return types, nil
}

func (s *Service) GetByID(id int64) (*RequestType, error) {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRequestTypeNotFound
	}
	return t, nil
}

// CreateType adds a new type. Duplicate codes fail with a conflict and
// persist nothing.
func (s *Service) CreateType(dto CreateTypeDTO) (*RequestType, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.ExistsByCode(dto.Code)
	if err != nil {
		s.logger.Error("failed to check type code uniqueness", "error", err, "code", dto.Code)
		return nil, internal.NewInternalError("failed to create request type", err)
	}
	if exists {
		s.logger.Warn("duplicate request type code", "code", dto.Code)
		return nil, internal.ErrDuplicateTypeCode
	}

	t := NewRequestType(dto.Code, dto.Name)
	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create request type", "error", err, "code", dto.Code)
		return nil, internal.NewInternalError("failed to create request type", err)
	}

	s.logger.Info("request type created", "type_id", t.ID, "code", t.Code)
	return t, nil
}

// UpdateType renames a type and optionally flips its active flag. The code
// is immutable.
func (s *Service) UpdateType(id int64, dto UpdateTypeDTO) (*RequestType, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrRequestTypeNotFound
	}

	t.Name = dto.Name
	if dto.Active != nil {
		t.IsActive = *dto.Active
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update request type", "error", err, "type_id", id)
		return nil, internal.NewInternalError("failed to update request type", err)
	}

	return t, nil
}

// DeactivateType is the delete operation: logical only, never a hard delete.
func (s *Service) DeactivateType(id int64) error {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrRequestTypeNotFound
	}

	t.Deactivate()
	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to deactivate request type", "error", err, "type_id", id)
		return internal.NewInternalError("failed to deactivate request type", err)
	}

	s.logger.Info("request type deactivated", "type_id", id, "code", t.Code)
	return nil
}
