// scripts/seed_admin.go
//
// Standalone maintenance script: promotes an existing account to admin or
// pre-creates an admin account so the first sign-in lands with the right
// role. Run with: go run scripts/seed_admin.go admin@example.com
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"SlowDown/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file, using environment variables")
	}

	if len(os.Args) < 2 {
		fmt.Println("usage: go run scripts/seed_admin.go <email>")
		os.Exit(1)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "slow_down"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Println("failed to connect to database:", err)
		os.Exit(1)
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		user.Role = models.RoleAdmin
		user.DailyLimitMinutes = models.AdminDailyLimit
		if err := db.Save(&user).Error; err != nil {
			fmt.Println("failed to update user:", err)
			os.Exit(1)
		}
		fmt.Printf("promoted %s to admin\n", email)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Email:             email,
			DisplayName:       strings.Split(email, "@")[0],
			Role:              models.RoleAdmin,
			DailyLimitMinutes: models.AdminDailyLimit,
		}
		if err := db.Create(&user).Error; err != nil {
			fmt.Println("failed to create user:", err)
			os.Exit(1)
		}
		fmt.Printf("created admin account %s\n", email)
	default:
		fmt.Println("failed to look up user:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
