package main

import (
	"context"
	"flag"
	"log"

	"github.com/rehmanpranto/TutorTrack/internal/repository"
	"github.com/rehmanpranto/TutorTrack/internal/service"
	"github.com/rehmanpranto/TutorTrack/pkg/config"
	"github.com/rehmanpranto/TutorTrack/pkg/database"
	"github.com/rehmanpranto/TutorTrack/pkg/logger"
)

// createuser provisions a login user for the credentials strategy. The
// schema is initialized first so the command works against a fresh
// database.
func main() {
	email := flag.String("email", "", "login email (required)")
	password := flag.String("password", "", "login password (required)")
	name := flag.String("name", "Tutor", "display name")
	role := flag.String("role", "tutor", "user role")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: createuser -email <email> -password <password> [-name <name>] [-role <role>]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()

	schemaRepo := repository.NewSchemaRepository(db)
	if err := schemaRepo.Init(ctx, cfg.Student.DefaultName, cfg.Student.DefaultEmail); err != nil {
		logr.Sugar().Fatalw("failed to initialize database", "error", err)
	}

	userSvc := service.NewUserService(repository.NewUserRepository(db), nil, logr)
	user, already, err := userSvc.Provision(ctx, service.ProvisionRequest{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Role:     *role,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to provision user", "error", err)
	}

	if already {
		logr.Sugar().Infow("user already exists", "user_id", user.ID, "email", user.Email)
		return
	}
	logr.Sugar().Infow("user created", "user_id", user.ID, "email", user.Email, "role", user.Role)
}
