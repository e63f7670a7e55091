package salary

import (
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
)

type UpdateSalaryDTO struct {
	Amount int64 `json:"amount"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int64) (*Salary, error) {
	return s.repo.GetByID(id)
}

func (s *Service) UpdateAmount(id int64, dto UpdateSalaryDTO) error {
	if err := validation.ValidateSalaryAmount(dto.Amount); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.UpdateAmount(id, dto.Amount)
}
