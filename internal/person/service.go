package person

import (
	internal "github.com/frahmantamala/hr-management/internal"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAll() ([]*Person, error) {
	return s.repo.GetAll()
}

func (s *Service) GetByID(id int64) (*Person, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Count() (int64, error) {
	return s.repo.Count()
}

func (s *Service) Create(dto CreateUpdatePersonDTO) (*Person, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := dto.toDomain()
	if err := s.repo.Create(p); err != nil {
		return nil, internal.NewInternalError("failed to create person", err)
	}
	return p, nil
}

func (s *Service) Update(id int64, dto CreateUpdatePersonDTO) (*Person, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p := dto.toDomain()
	p.ID = existing.ID
	if err := s.repo.Update(p); err != nil {
		return nil, internal.NewInternalError("failed to update person", err)
	}
	return s.repo.GetByID(id)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
