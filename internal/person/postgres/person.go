package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/frahmantamala/hr-management/internal"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
	personDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/person"
	"github.com/frahmantamala/hr-management/internal/person"
)

// PersonRepository implements person.Repository using GORM.
type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) person.Repository {
	return &PersonRepository{db: db}
}

// personRow is the flattened join used for reads.
type personRow struct {
	ID             int64
	Name           string
	Surname        string
	Age            int
	Email          string
	Address        string
	PositionID     int64
	PositionName   string
	DepartmentID   int64
	DepartmentName string
	SalaryID       int64
	SalaryAmount   int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (r *PersonRepository) baseQuery() *gorm.DB {
	return r.db.Model(&personDatamodel.Person{}).
		Select(`persons.id, persons.name, persons.surname, persons.age, persons.email, persons.address,
			persons.position_id, positions.name AS position_name,
			departments.id AS department_id, departments.name AS department_name,
			persons.salary_id, salaries.amount AS salary_amount,
			persons.created_at, persons.updated_at`).
		Joins("JOIN positions ON positions.id = persons.position_id").
		Joins("JOIN departments ON departments.id = positions.department_id").
		Joins("JOIN salaries ON salaries.id = persons.salary_id")
}

func (r *PersonRepository) toDomain(row *personRow) (*person.Person, error) {
	p := &person.Person{
		ID:      row.ID,
		Name:    row.Name,
		Surname: row.Surname,
		Age:     row.Age,
		Email:   row.Email,
		Address: row.Address,
		Position: person.Position{
			ID:             row.PositionID,
			Name:           row.PositionName,
			DepartmentID:   row.DepartmentID,
			DepartmentName: row.DepartmentName,
		},
		Salary: person.Salary{
			ID:     row.SalaryID,
			Amount: row.SalaryAmount,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	var details personDatamodel.PersonDetails
	err := r.db.Where("person_id = ?", row.ID).First(&details).Error
	if err == nil {
		p.Details = &person.Details{
			BirthDay: details.BirthDay,
			City:     details.City,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return p, nil
}

func (r *PersonRepository) GetByID(id int64) (*person.Person, error) {
	var row personRow
	err := r.baseQuery().Where("persons.id = ?", id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, internal.ErrPersonNotFound
	}
	return r.toDomain(&row)
}

func (r *PersonRepository) GetAll() ([]*person.Person, error) {
	var rows []personRow
	err := r.baseQuery().Order("persons.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	persons := make([]*person.Person, 0, len(rows))
	for i := range rows {
		p, err := r.toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

func (r *PersonRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&personDatamodel.Person{}).Count(&count).Error
	return count, err
}

// Create writes the whole person graph in one transaction. Department and
// position resolve find-or-create; the salary row is always fresh; details
// are written after the person id is known.
func (r *PersonRepository) Create(p *person.Person) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		position, err := resolvePosition(tx, p.Position.Name, p.Position.DepartmentName)
		if err != nil {
			return err
		}

		now := time.Now()
		salary := personDatamodel.Salary{
			Amount:    p.Salary.Amount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&salary).Error; err != nil {
			return err
		}

		record := personDatamodel.Person{
			Name:       p.Name,
			Surname:    p.Surname,
			Age:        p.Age,
			Email:      p.Email,
			Address:    p.Address,
			PositionID: position.ID,
			SalaryID:   salary.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if p.Details != nil {
			details := personDatamodel.PersonDetails{
				PersonID:  record.ID,
				BirthDay:  p.Details.BirthDay,
				City:      p.Details.City,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}

		p.ID = record.ID
		p.Position.ID = position.ID
		p.Position.DepartmentID = position.DepartmentID
		p.Salary.ID = salary.ID
		p.CreatedAt = record.CreatedAt
		p.UpdatedAt = record.UpdatedAt
		return nil
	})
}

func (r *PersonRepository) Update(p *person.Person) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var record personDatamodel.Person
		if err := tx.Where("id = ?", p.ID).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrPersonNotFound
			}
			return err
		}

		position, err := resolvePosition(tx, p.Position.Name, p.Position.DepartmentName)
		if err != nil {
			return err
		}

		now := time.Now()
		err = tx.Model(&personDatamodel.Salary{}).
			Where("id = ?", record.SalaryID).
			Updates(map[string]interface{}{
				"amount":     p.Salary.Amount,
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}

		err = tx.Model(&personDatamodel.Person{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"name":        p.Name,
				"surname":     p.Surname,
				"age":         p.Age,
				"email":       p.Email,
				"address":     p.Address,
				"position_id": position.ID,
				"updated_at":  now,
			}).Error
		if err != nil {
			return err
		}

		if p.Details == nil {
			return nil
		}

		var details personDatamodel.PersonDetails
		err = tx.Where("person_id = ?", p.ID).First(&details).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			details = personDatamodel.PersonDetails{
				PersonID:  p.ID,
				BirthDay:  p.Details.BirthDay,
				City:      p.Details.City,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return tx.Create(&details).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&personDatamodel.PersonDetails{}).
			Where("person_id = ?", p.ID).
			Updates(map[string]interface{}{
				"birth_day":  p.Details.BirthDay,
				"city":       p.Details.City,
				"updated_at": now,
			}).Error
	})
}

// Delete removes the person with its details and salary. Position rows stay;
// they may be shared with other persons.
func (r *PersonRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var record personDatamodel.Person
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrPersonNotFound
			}
			return err
		}

		if err := tx.Where("person_id = ?", id).
			Delete(&personDatamodel.PersonDetails{}).Error; err != nil {
			return err
		}

		if err := tx.Where("id = ?", id).
			Delete(&personDatamodel.Person{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", record.SalaryID).
			Delete(&personDatamodel.Salary{}).Error
	})
}

// resolvePosition find-or-creates the department by exact name, then the
// position by (name, department).
func resolvePosition(tx *gorm.DB, positionName, departmentName string) (*personDatamodel.Position, error) {
	var dept departmentDatamodel.Department
	err := tx.Where("name = ?", departmentName).First(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		dept = departmentDatamodel.Department{
			Name:      departmentName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = tx.Create(&dept).Error
	}
	if err != nil {
		return nil, err
	}

	var position personDatamodel.Position
	err = tx.Where("name = ? AND department_id = ?", positionName, dept.ID).First(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		position = personDatamodel.Position{
			Name:         positionName,
			DepartmentID: dept.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err = tx.Create(&position).Error
	}
	if err != nil {
		return nil, err
	}

	return &position, nil
}
