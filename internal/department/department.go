package department

import "time"

// Department is the domain representation used by services and handlers.
type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository is the persistence surface for the reassignment engine. The
// multi-row operations (DeleteWithReassign, ChangePersonDepartment) must be
// implemented as a single transaction.
type Repository interface {
	GetByID(id int64) (*Department, error)
	// GetByNameIgnoreCase backs the creation-time uniqueness check.
	GetByNameIgnoreCase(name string) (*Department, error)
	Create(dept *Department) error
	Rename(id int64, newName string) error
	// GetAll and Count both exclude the "Unassigned" sentinel.
	GetAll() ([]*Department, error)
	Count() (int64, error)
	// GetOrCreateUnassigned resolves the sentinel department, creating it on
	// first need. Idempotent: never produces a second row.
	GetOrCreateUnassigned() (*Department, error)
	// DeleteWithReassign re-points every position referencing the department
	// at the sentinel and then removes the department row, atomically. If
	// reassignment fails the deletion must not happen.
	DeleteWithReassign(id int64) error
	// ChangePersonDepartment re-points a person's position at the department
	// with the given name, creating the department (exact-name match) and the
	// position row for it when absent.
	ChangePersonDepartment(personID int64, newDepartmentName string) error
}

// ServiceAPI is the surface the HTTP layer depends on.
type ServiceAPI interface {
	GetAll() ([]*Department, error)
	GetByID(id int64) (*Department, error)
	Count() (int64, error)
	Create(dto CreateUpdateDepartmentDTO) (*Department, error)
	Rename(id int64, dto CreateUpdateDepartmentDTO) error
	Delete(id int64) error
	ChangePersonDepartment(personID int64, dto ChangePersonDepartmentDTO) error
}
