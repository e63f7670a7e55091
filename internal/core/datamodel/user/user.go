package user

import "time"

// User is the persisted credential record. IDs are UUID strings so they stay
// portable across postgres and the sqlite test store.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole links users to roles. The composite unique index keeps a
// (user, role) pair from ever being stored twice.
type UserRole struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_roles_pair"`
	RoleID    string    `gorm:"column:role_id;type:uuid;not null;uniqueIndex:idx_user_roles_pair"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
