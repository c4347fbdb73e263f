package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-restaurant-orders/config"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	"github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
	pginfra "github.com/oksasatya/go-restaurant-orders/internal/infrastructure/postgres"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	menu := pginfra.NewMenuRepository(pool)

	username := "demoUser"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	u := &entity.User{Username: username, PasswordHash: hash}
	switch err := users.Create(ctx, u); {
	case errors.Is(err, repository.ErrDuplicate):
		fmt.Printf("user %s already exists\n", username)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		fmt.Printf("seeded user: id=%s username=%s password=%s\n", u.ID, username, password)
	}

	existing, err := menu.List(ctx)
	if err != nil {
		log.Fatalf("failed to list menu: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("menu already has %d item(s), skipping\n", len(existing))
		return
	}
	items := []entity.MenuItem{
		{Name: "Margherita Pizza", Category: "Pizza", Price: 9.5, Availability: true},
		{Name: "Caesar Salad", Category: "Salad", Price: 6.25, Availability: true},
		{Name: "Spaghetti Carbonara", Category: "Pasta", Price: 11, Availability: true},
		{Name: "Tiramisu", Category: "Dessert", Price: 5, Availability: true},
		{Name: "Lemonade", Category: "Drinks", Price: 2.5, Availability: false},
	}
	for i := range items {
		if err := menu.Create(ctx, &items[i]); err != nil {
			log.Fatalf("failed to seed menu item %q: %v", items[i].Name, err)
		}
		fmt.Printf("seeded menu item: id=%s name=%s price=%.2f\n", items[i].ID, items[i].Name, items[i].Price)
	}
}
