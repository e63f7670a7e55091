package person

import "time"

// Position rows are shared: resolved find-or-create by (name, department), so
// two persons holding "Dev" in "Engineering" reference the same row.
type Position struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null;uniqueIndex:idx_positions_name_department"`
	DepartmentID int64     `gorm:"column:department_id;not null;uniqueIndex:idx_positions_name_department"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Position) TableName() string {
	return "positions"
}

type Salary struct {
	ID        int64     `gorm:"primaryKey"`
	Amount    int64     `gorm:"column:amount;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Salary) TableName() string {
	return "salaries"
}

type Person struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Surname    string    `gorm:"column:surname;not null"`
	Age        int       `gorm:"column:age"`
	Email      string    `gorm:"column:email"`
	Address    string    `gorm:"column:address"`
	PositionID int64     `gorm:"column:position_id;not null"`
	SalaryID   int64     `gorm:"column:salary_id;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Person) TableName() string {
	return "persons"
}

type PersonDetails struct {
	ID        int64     `gorm:"primaryKey"`
	PersonID  int64     `gorm:"column:person_id;uniqueIndex;not null"`
	BirthDay  string    `gorm:"column:birth_day"`
	City      string    `gorm:"column:city"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PersonDetails) TableName() string {
	return "person_details"
}
