package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/hr-management/internal/auth"
	userDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/hr-management/internal/core/user"
)

// Repository implements auth.UserRepository using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ExistsByUsernameOrEmail runs the single existence check covering both
// unique fields, case-sensitive as stored.
func (r *Repository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) GetByEmail(email string) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &auth.User{
		ID:           record.ID,
		Username:     record.Username,
		Email:        record.Email,
		PasswordHash: record.PasswordHash,
	}, nil
}

func (r *Repository) GetRoleByName(name string) (*auth.Role, error) {
	var record userDatamodel.Role
	err := r.db.Where("name = ?", name).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &auth.Role{ID: record.ID, Name: record.Name}, nil
}

// CreateUserWithRole inserts the user row and its role link in a single
// transaction. A failure on either insert rolls back both.
func (r *Repository) CreateUserWithRole(user *auth.User, roleID string) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		record := userDatamodel.User{
			ID:           user.ID,
			Username:     user.Username,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		link := userDatamodel.UserRole{
			UserID:    user.ID,
			RoleID:    roleID,
			CreatedAt: now,
		}
		return tx.Create(&link).Error
	})
}

// GetRoleNamesForUser joins user_roles to roles and returns the role names.
func (r *Repository) GetRoleNamesForUser(userID string) ([]string, error) {
	var names []string
	err := r.db.Model(&userDatamodel.UserRole{}).
		Select("roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &names).Error
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// EnsureSeedRoles creates the static role set if absent. Idempotent: safe to
// run on every startup.
func (r *Repository) EnsureSeedRoles() error {
	for _, name := range []string{coreuser.RoleAdmin, coreuser.RoleUser} {
		var existing userDatamodel.Role
		err := r.db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		role := userDatamodel.Role{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: time.Now(),
		}
		if err := r.db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
