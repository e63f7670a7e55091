package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/frahmantamala/hr-management/internal"
	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
	personDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/person"
	"github.com/frahmantamala/hr-management/internal/department"
)

// DepartmentRepository implements department.Repository using GORM.
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func toDomain(record *departmentDatamodel.Department) *department.Department {
	return &department.Department{
		ID:        record.ID,
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func (r *DepartmentRepository) GetByID(id int64) (*department.Department, error) {
	var record departmentDatamodel.Department
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, err
	}
	return toDomain(&record), nil
}

// GetByNameIgnoreCase returns nil without error when no department matches;
// the service treats a non-nil result as a duplicate.
func (r *DepartmentRepository) GetByNameIgnoreCase(name string) (*department.Department, error) {
	var record departmentDatamodel.Department
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(&record), nil
}

func (r *DepartmentRepository) Create(dept *department.Department) error {
	now := time.Now()
	record := departmentDatamodel.Department{
		Name:      dept.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return err
	}
	dept.ID = record.ID
	dept.CreatedAt = record.CreatedAt
	dept.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *DepartmentRepository) Rename(id int64, newName string) error {
	return r.db.Model(&departmentDatamodel.Department{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       newName,
			"updated_at": time.Now(),
		}).Error
}

func (r *DepartmentRepository) GetAll() ([]*department.Department, error) {
	var records []departmentDatamodel.Department
	err := r.db.Where("name <> ?", departmentDatamodel.SentinelUnassigned).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	departments := make([]*department.Department, 0, len(records))
	for i := range records {
		departments = append(departments, toDomain(&records[i]))
	}
	return departments, nil
}

func (r *DepartmentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&departmentDatamodel.Department{}).
		Where("name <> ?", departmentDatamodel.SentinelUnassigned).
		Count(&count).Error
	return count, err
}

func (r *DepartmentRepository) GetOrCreateUnassigned() (*department.Department, error) {
	dept, err := getOrCreateUnassigned(r.db)
	if err != nil {
		return nil, err
	}
	return toDomain(dept), nil
}

func getOrCreateUnassigned(tx *gorm.DB) (*departmentDatamodel.Department, error) {
	var record departmentDatamodel.Department
	err := tx.Where("name = ?", departmentDatamodel.SentinelUnassigned).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	record = departmentDatamodel.Department{
		Name:      departmentDatamodel.SentinelUnassigned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteWithReassign moves every position out of the department and removes
// the row inside one transaction, so the no-orphan invariant holds even if a
// step fails midway.
func (r *DepartmentRepository) DeleteWithReassign(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		unassigned, err := getOrCreateUnassigned(tx)
		if err != nil {
			return err
		}

		err = tx.Model(&personDatamodel.Position{}).
			Where("department_id = ?", id).
			Updates(map[string]interface{}{
				"department_id": unassigned.ID,
				"updated_at":    time.Now(),
			}).Error
		if err != nil {
			return err
		}

		return tx.Where("id = ?", id).
			Delete(&departmentDatamodel.Department{}).Error
	})
}

// ChangePersonDepartment re-points the person's position at the named
// department. Department and position are resolved find-or-create, so moving
// a person never mutates a position row shared with someone else.
func (r *DepartmentRepository) ChangePersonDepartment(personID int64, newDepartmentName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var person personDatamodel.Person
		if err := tx.Where("id = ?", personID).First(&person).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrPersonNotFound
			}
			return err
		}

		var currentPosition personDatamodel.Position
		if err := tx.Where("id = ?", person.PositionID).First(&currentPosition).Error; err != nil {
			return err
		}

		dept, err := findOrCreateDepartment(tx, newDepartmentName)
		if err != nil {
			return err
		}

		position, err := findOrCreatePosition(tx, currentPosition.Name, dept.ID)
		if err != nil {
			return err
		}

		return tx.Model(&personDatamodel.Person{}).
			Where("id = ?", personID).
			Updates(map[string]interface{}{
				"position_id": position.ID,
				"updated_at":  time.Now(),
			}).Error
	})
}

// findOrCreateDepartment matches by exact name, unlike the case-insensitive
// creation check on the public create path.
func findOrCreateDepartment(tx *gorm.DB, name string) (*departmentDatamodel.Department, error) {
	var record departmentDatamodel.Department
	err := tx.Where("name = ?", name).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	record = departmentDatamodel.Department{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func findOrCreatePosition(tx *gorm.DB, name string, departmentID int64) (*personDatamodel.Position, error) {
	var record personDatamodel.Position
	err := tx.Where("name = ? AND department_id = ?", name, departmentID).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	record = personDatamodel.Position{
		Name:         name,
		DepartmentID: departmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
