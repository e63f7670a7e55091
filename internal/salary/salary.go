package salary

import "time"

type Salary struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	GetByID(id int64) (*Salary, error)
	UpdateAmount(id int64, amount int64) error
}

type ServiceAPI interface {
	GetByID(id int64) (*Salary, error)
	UpdateAmount(id int64, dto UpdateSalaryDTO) error
}
