package department

import (
	internal "github.com/frahmantamala/hr-management/internal"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
)

// Service holds the department-reassignment logic: safe deletion and moves
// that never leave a person without a department.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAll() ([]*Department, error) {
	return s.repo.GetAll()
}

func (s *Service) GetByID(id int64) (*Department, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Count() (int64, error) {
	return s.repo.Count()
}

// Create inserts a department after a case-insensitive uniqueness check.
func (s *Service) Create(dto CreateUpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByNameIgnoreCase(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrDuplicateDepartment
	}

	dept := &Department{Name: dto.Name}
	if err := s.repo.Create(dept); err != nil {
		return nil, internal.NewInternalError("failed to create department", err)
	}
	return dept, nil
}

func (s *Service) Rename(id int64, dto CreateUpdateDepartmentDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Rename(id, dto.Name)
}

// Delete removes a department after every person whose position pointed at
// it has been reassigned to the "Unassigned" sentinel. Reassignment and
// deletion run as one unit; if reassignment fails the department stays.
func (s *Service) Delete(id int64) error {
	dept, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	// The sentinel must always exist; deleting it would orphan everyone
	// parked there.
	if dept.Name == departmentDatamodel.SentinelUnassigned {
		return internal.NewValidationError("the Unassigned department cannot be deleted", internal.ErrCodeValidationFailed)
	}

	return s.repo.DeleteWithReassign(id)
}

// ChangePersonDepartment moves a person to the named department, creating it
// first when it does not exist (exact-name match).
func (s *Service) ChangePersonDepartment(personID int64, dto ChangePersonDepartmentDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	return s.repo.ChangePersonDepartment(personID, dto.NewDepartmentName)
}
