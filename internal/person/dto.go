package person

import (
	internal "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/core/common/validation"
)

type PositionDTO struct {
	Name           string `json:"name"`
	DepartmentName string `json:"department_name"`
}

type SalaryDTO struct {
	Amount int64 `json:"amount"`
}

type PersonDetailsDTO struct {
	BirthDay string `json:"birth_day"`
	City     string `json:"city"`
}

type CreateUpdatePersonDTO struct {
	Name     string            `json:"name"`
	Surname  string            `json:"surname"`
	Age      int               `json:"age"`
	Email    string            `json:"email"`
	Address  string            `json:"address"`
	Position PositionDTO       `json:"position"`
	Salary   SalaryDTO         `json:"salary"`
	Details  *PersonDetailsDTO `json:"details,omitempty"`
}

func (d CreateUpdatePersonDTO) Validate() *internal.AppError {
	if err := validation.ValidatePersonName("name", d.Name); err != nil {
		return err
	}
	if err := validation.ValidatePersonName("surname", d.Surname); err != nil {
		return err
	}
	if err := validation.ValidatePersonAge(d.Age); err != nil {
		return err
	}
	if err := validation.ValidatePersonName("position.name", d.Position.Name); err != nil {
		return err
	}
	if err := validation.ValidatePersonName("position.department_name", d.Position.DepartmentName); err != nil {
		return err
	}
	if err := validation.ValidateSalaryAmount(d.Salary.Amount); err != nil {
		return err
	}
	return nil
}

func (d CreateUpdatePersonDTO) toDomain() *Person {
	p := &Person{
		Name:    d.Name,
		Surname: d.Surname,
		Age:     d.Age,
		Email:   d.Email,
		Address: d.Address,
		Position: Position{
			Name:           d.Position.Name,
			DepartmentName: d.Position.DepartmentName,
		},
		Salary: Salary{Amount: d.Salary.Amount},
	}
	if d.Details != nil {
		p.Details = &Details{
			BirthDay: d.Details.BirthDay,
			City:     d.Details.City,
		}
	}
	return p
}
