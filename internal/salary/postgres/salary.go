package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/frahmantamala/hr-management/internal"
	personDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/person"
	"github.com/frahmantamala/hr-management/internal/salary"
)

type SalaryRepository struct {
	db *gorm.DB
}

func NewSalaryRepository(db *gorm.DB) salary.Repository {
	return &SalaryRepository{db: db}
}

func (r *SalaryRepository) GetByID(id int64) (*salary.Salary, error) {
	var record personDatamodel.Salary
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSalaryNotFound
		}
		return nil, err
	}
	return &salary.Salary{
		ID:        record.ID,
		Amount:    record.Amount,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (r *SalaryRepository) UpdateAmount(id int64, amount int64) error {
	return r.db.Model(&personDatamodel.Salary{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount":     amount,
			"updated_at": time.Now(),
		}).Error
}
