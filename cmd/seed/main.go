package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/taskdesk-api/config"
	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
	"github.com/oksasatya/taskdesk-api/internal/infrastructure/store"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
)

const (
	seedName    = "Seed user"
	seedEmail   = "seeduser@diegoperez.es"
	seedCompany = "Company"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if err := clearUsers(ctx, st.Users()); err != nil {
		log.Fatalf("failed to clear users: %v", err)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "seedpassword"
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := &entity.User{
		Name:     seedName,
		Email:    seedEmail,
		Password: hash,
		Company:  seedCompany,
		Role:     entity.RoleClient,
		Comments: []string{},
	}
	if err := st.Users().Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s\n", u.ID, u.Email, u.Name)
}

// clearUsers empties the users collection when it holds any record.
func clearUsers(ctx context.Context, users repository.UserRepository) error {
	existing, err := users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range existing {
		if _, err := users.Delete(ctx, u.ID); err != nil {
			return fmt.Errorf("delete %s: %w", u.ID, err)
		}
	}
	if len(existing) > 0 {
		fmt.Printf("removed %d existing users\n", len(existing))
	}
	return nil
}
