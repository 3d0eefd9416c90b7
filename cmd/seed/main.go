package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// Seeds the schema and an initial ADMIN user so the admin endpoints are
// reachable on a fresh database.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Todo{},
		&model.Manager{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	email := getEnv("ADMIN_EMAIL", "admin@taskhub.local")
	password := getEnv("ADMIN_PASSWORD", "Admin1234")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	exists, err := userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Failed to check admin user: %v", err)
	}
	if exists {
		log.Printf("Admin user %s already exists, nothing to do", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Seeded admin user %s (id=%d)", admin.Email, admin.ID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
