package person

import "time"

type Position struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
}

type Salary struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}

type Details struct {
	BirthDay string `json:"birth_day,omitempty"`
	City     string `json:"city,omitempty"`
}

// Person is the aggregate view: every person always has a position, the
// position always has a department, and the person always has a salary.
type Person struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Position  Position  `json:"position"`
	Salary    Salary    `json:"salary"`
	Details   *Details  `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	GetByID(id int64) (*Person, error)
	GetAll() ([]*Person, error)
	Count() (int64, error)
	// Create persists the whole graph in one transaction: department and
	// position resolved find-or-create, a fresh salary row, the person, and
	// optional details once the person id is known.
	Create(p *Person) error
	Update(p *Person) error
	Delete(id int64) error
}

type ServiceAPI interface {
	GetAll() ([]*Person, error)
	GetByID(id int64) (*Person, error)
	Count() (int64, error)
	Create(dto CreateUpdatePersonDTO) (*Person, error)
	Update(id int64, dto CreateUpdatePersonDTO) (*Person, error)
	Delete(id int64) error
}
