package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/fondita/fondita-backend/internal/accounts"
	"github.com/fondita/fondita-backend/pkg/config"
	"github.com/fondita/fondita-backend/pkg/db"
	"github.com/fondita/fondita-backend/pkg/db/models"
	"github.com/fondita/fondita-backend/pkg/enums"
	"github.com/fondita/fondita-backend/pkg/logger"
	"github.com/fondita/fondita-backend/pkg/security"
)

const tempPasswordLength = 16

// Bootstraps the first super_admin account so the back office can be reached
// on a fresh database. Safe to re-run: an existing email is left untouched.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	email := os.Getenv("FONDITA_SEED_ADMIN_EMAIL")
	if email == "" {
		fmt.Fprintln(os.Stderr, "FONDITA_SEED_ADMIN_EMAIL is required")
		os.Exit(1)
	}
	name := os.Getenv("FONDITA_SEED_ADMIN_NAME")
	if name == "" {
		name = "Administrador"
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := accounts.NewAdminRepository(dbClient.DB())

	ctx = logg.WithField(ctx, "email", email)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		logg.Info(ctx, "admin already exists, nothing to do")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Error(ctx, "failed to check existing admin", err)
		os.Exit(1)
	}

	password := os.Getenv("FONDITA_SEED_ADMIN_PASSWORD")
	generated := false
	if password == "" {
		password, err = security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			logg.Error(ctx, "failed to generate temporary password", err)
			os.Exit(1)
		}
		generated = true
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	admin, err := repo.Create(ctx, &models.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         enums.AdminRoleSuperAdmin,
		Active:       true,
	})
	if err != nil {
		logg.Error(ctx, "failed to create super admin", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "admin_id", admin.ID.String()), "super admin created")
	if generated {
		// Printed once; never logged so it stays out of aggregated log storage.
		fmt.Printf("temporary password for %s: %s\n", email, password)
	}
}
