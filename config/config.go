package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"SlowDown/models"
	"SlowDown/timeutil"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB
var FirebaseAuth *auth.Client

func InitDatabase() {
	host := getEnv("DB_HOST", "localhost")
	user := getEnv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := getEnv("DB_NAME", "slow_down")
	port := getEnv("DB_PORT", "5432")

	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		if strings.Contains(host, "render.com") {
			sslmode = "require"
		} else {
			sslmode = "disable"
		}
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB.AutoMigrate(&models.User{}, &models.UsageRecord{}, &models.TimeRequest{}, &models.Session{})
}

func InitFirebase() {
	opt := option.WithCredentialsFile(os.Getenv("FIREBASE_CREDENTIALS_PATH"))
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatalf("error getting Auth client: %v", err)
	}

	FirebaseAuth = authClient
}

// JWTSecret must be set in the environment; there is no fallback.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	return []byte(secret)
}

// AdminEmails is the allow-list that grants the admin role at first
// sign-in.
func AdminEmails() []string {
	raw := os.Getenv("ADMIN_EMAILS")
	if raw == "" {
		return nil
	}
	var emails []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(strings.ToLower(e)); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// TimezoneOffsetHours is the fixed offset every dateKey is computed in.
func TimezoneOffsetHours() int {
	if raw := os.Getenv("TIMEZONE_OFFSET_HOURS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return timeutil.DefaultOffsetHours
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
