// seedadmin creates the initial admin user. Run once after the first deploy:
//
//	ADMIN_PASSWORD=... go run ./cmd/seedadmin
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/NicolasGomez268/PuntoTecno/internal/config"
	"github.com/NicolasGomez268/PuntoTecno/internal/infra"
	"github.com/NicolasGomez268/PuntoTecno/internal/model"
	"github.com/NicolasGomez268/PuntoTecno/internal/repository"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("ADMIN_PASSWORD is required")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	if _, err := users.FindByUsername(ctx, "admin"); err == nil {
		log.Info().Msg("admin user already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}

	admin := &model.User{
		Username:     "admin",
		FirstName:    "Administrador",
		LastName:     "Sistema",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}
	log.Info().Str("username", admin.Username).Msg("admin user created")
}
