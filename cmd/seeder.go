package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreuser "github.com/frahmantamala/hr-management/internal/core/user"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with roles and a bootstrap admin user",
	Long:  `Seed the database with the built-in roles and a bootstrap admin account. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		if seedAdminPassword == "" {
			log.Fatal("--admin-password is required")
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm over db connection: %v", err)
		}

		for _, roleName := range []string{coreuser.RoleAdmin, coreuser.RoleUser} {
			var exists int
			if err := db.Raw("SELECT 1 FROM roles WHERE name = ?", roleName).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (id, name, created_at) VALUES (?, ?, now())", uuid.NewString(), roleName).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", roleName, err)
			}
			fmt.Println("Seeded role:", roleName)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		var adminID string
		if err := db.Raw("SELECT id FROM users WHERE email = ?", seedAdminEmail).Row().Scan(&adminID); err != nil {
			adminID = uuid.NewString()
			if err := db.Exec(
				"INSERT INTO users (id, username, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				adminID, "admin", seedAdminEmail, string(hash),
			).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", seedAdminEmail)
		} else {
			fmt.Println("admin user already exists; will ensure role link")
		}

		var adminRoleID string
		if err := db.Raw("SELECT id FROM roles WHERE name = ?", coreuser.RoleAdmin).Row().Scan(&adminRoleID); err != nil {
			log.Fatalf("role not found after insert %s: %v", coreuser.RoleAdmin, err)
		}

		var linked int
		if err := db.Raw("SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?", adminID, adminRoleID).Row().Scan(&linked); err != nil {
			if err := db.Exec("INSERT INTO user_roles (user_id, role_id, created_at) VALUES (?, ?, now())", adminID, adminRoleID).Error; err != nil {
				log.Fatalf("failed to grant admin role: %v", err)
			}
		}

		fmt.Println("Granted Admin role to:", seedAdminEmail)
	},
}
