package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users and request types for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := openGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"request_audit_events", "request_comments", "requests", "request_types", "users"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		seedUser(gormDB, "admin@company.test", "ADMIN", string(hash), nil)
		managerID := seedUser(gormDB, "manager@company.test", "MANAGER", string(hash), nil)
		seedUser(gormDB, "employee@company.test", "EMPLOYEE", string(hash), &managerID)

		types := []struct {
			Code string
			Name string
		}{
			{"ACCESS", "Access grant"},
			{"HARDWARE", "Hardware purchase"},
			{"SOFTWARE", "Software license"},
			{"TRAVEL", "Business travel"},
		}
		for _, t := range types {
			var exists int
			if err := gormDB.Raw("SELECT 1 FROM request_types WHERE code = ?", t.Code).Row().Scan(&exists); err == nil {
				continue
			}
			if err := gormDB.Exec(
				"INSERT INTO request_types (code, name, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())",
				t.Code, t.Name,
			).Error; err != nil {
				log.Fatalf("failed to insert request type %s: %v", t.Code, err)
			}
			fmt.Println("Seeded request type:", t.Code)
		}

		fmt.Println("Seeding complete. All seeded users log in with password \"password\".")
	},
}

func seedUser(db *gorm.DB, email, role, hash string, managerID *int64) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Println("user already exists:", email)
		return id
	}

	if err := db.Exec(
		"INSERT INTO users (email, password_hash, role, manager_id, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
		email, hash, role, managerID,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}

	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("failed to look up seeded user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return id
}
