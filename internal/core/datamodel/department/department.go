package department

import "time"

// SentinelUnassigned is the permanent placeholder department. Persons whose
// department is deleted are re-pointed here; it is never deleted itself and
// is excluded from listings and counts.
const SentinelUnassigned = "Unassigned"

type Department struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
