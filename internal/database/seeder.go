package database

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mining-ops-api-server/config"
	"mining-ops-api-server/internal/auth"
	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

// SeedAdmin creates the bootstrap admin account on first start so a fresh
// deployment has someone who can register the rest of the staff. Re-running
// against an existing account is a no-op.
func SeedAdmin(ctx context.Context, users store.UserStore, cfg config.Config, log *zap.Logger) error {
	email := cfg.Seed.AdminEmail
	password := cfg.Seed.AdminPassword
	if email == "" || password == "" {
		log.Info("admin seed credentials not configured, skipping")
		return nil
	}

	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Info("admin account already exists, seeding skipped", zap.String("email", email))
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		UserID:   "USR-ADMIN",
		UserName: "System Admin",
		Role:     models.RoleAdmin,
		Email:    email,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := users.Create(ctx, &admin); err != nil {
		return err
	}

	log.Info("admin account seeded", zap.String("email", email))
	return nil
}
