// Command seed prepares a database: applies migrations, adds sample courses to an empty
// catalog and ensures the bootstrap admin account exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/bissquit/course-garden/internal/app"
	"github.com/bissquit/course-garden/internal/catalog"
	catalogpostgres "github.com/bissquit/course-garden/internal/catalog/postgres"
	"github.com/bissquit/course-garden/internal/config"
	"github.com/bissquit/course-garden/internal/identity"
	"github.com/bissquit/course-garden/internal/identity/jwt"
	identitypostgres "github.com/bissquit/course-garden/internal/identity/postgres"
	"github.com/bissquit/course-garden/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(app.NewLogger(cfg.Log))

	// The seed command always brings the schema up to date.
	dbConfig := cfg.Database
	dbConfig.AutoMigrate = true

	db, err := app.OpenDatabase(dbConfig)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	hasher, err := identity.NewPasswordHasher(cfg.Password.BcryptCost)
	if err != nil {
		return fmt.Errorf("create password hasher: %w", err)
	}

	identityService := identity.NewService(
		identitypostgres.NewRepository(db),
		jwt.NewAuthenticator(jwt.Config{SecretKey: cfg.JWT.SecretKey, TokenTTL: cfg.JWT.TokenTTL, Issuer: cfg.JWT.Issuer}),
		hasher,
	)
	catalogService := catalog.NewService(catalogpostgres.NewRepository(db))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, err := seed.New(catalogService, identityService).Run(ctx, seed.Options{
		Courses: cfg.Seed.Courses,
		Admin: seed.Admin{
			Name:     cfg.Seed.Admin.Name,
			Email:    cfg.Seed.Admin.Email,
			Password: cfg.Seed.Admin.Password,
		},
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	slog.Info("seed complete",
		"courses_created", result.CoursesCreated,
		"admin_created", result.AdminCreated,
	)
	return nil
}
