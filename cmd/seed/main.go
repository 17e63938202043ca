// Command seed creates or refreshes the bootstrap ADMIN staff account.
package main

import (
	"context"
	"log"
	"strings"
	"time"

	"pnsMembership/internal/config"
	"pnsMembership/internal/database"
	"pnsMembership/internal/logging"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.LoadConfig()
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()
	logger := logging.GetLogger()

	seed := config.LoadAdminSeed()
	seed.Password = strings.TrimSpace(seed.Password)
	if seed.Email == "" || seed.Password == "" {
		logger.Fatalw("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatalw("connect to database", "error", err)
	}
	defer db.CloseDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalw("hash password", "error", err)
	}

	title := seed.Title
	staff := &models.Staff{
		Email:        validation.NormalizeEmail(seed.Email),
		PasswordHash: string(hash),
		Name:         seed.Name,
		Phone:        seed.Phone,
		Title:        &title,
		Role:         models.RoleAdmin,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.NewStaffRepository(db.DB).Upsert(ctx, staff); err != nil {
		logger.Fatalw("seed admin", "email", staff.Email, "error", err)
	}

	logger.Infow("seeded admin user", "id", staff.ID, "email", staff.Email, "name", staff.Name)
}
