package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"confsite/config"
	"confsite/internal/domain/entity"
	pginfra "confsite/internal/infrastructure/postgres"
	"confsite/pkg/cryptox"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	enc := cryptox.NewEncryptor(cfg.CryptoSecret, cfg.CryptoSalt)
	repo := pginfra.NewUserRepository(pool)

	users := []struct {
		login, firstname, lastname, email, company string
		role                                       entity.Role
		legacyID                                   string
	}{
		{"gehel", "Guillaume", "Ehret", "guillaume@dev-mind.fr", "Dev-Mind", entity.RoleStaff, "37"},
		{"aurelievache", "Aurélie", "Vache", "aurelie@cloud.example", "OVHcloud", entity.RoleUser, "119"},
		{"jdoe", "Jane", "Doe", "jane@doe.example", "", entity.RoleUser, ""},
	}

	for _, s := range users {
		encrypted, err := enc.Encrypt(s.email)
		if err != nil {
			log.Fatalf("encrypt email for %s: %v", s.login, err)
		}
		u := &entity.User{
			Login:     s.login,
			Firstname: s.firstname,
			Lastname:  s.lastname,
			Email:     encrypted,
			Company:   s.company,
			Description: map[entity.Language]string{
				entity.French:  fmt.Sprintf("Bio de **%s** à compléter.", s.firstname),
				entity.English: fmt.Sprintf("Bio of **%s** to be written.", s.firstname),
			},
			EmailHash: cryptox.EmailHash(s.email),
			Role:      s.role,
			LegacyID:  s.legacyID,
		}
		if err := repo.Save(ctx, u); err != nil {
			log.Fatalf("seed user %s: %v", s.login, err)
		}
		fmt.Printf("seeded user %s (%s)\n", s.login, s.role)
	}

	start := time.Date(2026, 4, 22, 10, 0, 0, 0, time.UTC)
	if _, err := pool.Exec(ctx, `
		INSERT INTO talks (id, title, summary, language, room, start_time, end_time, speaker_logins)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title
	`, "understanding-kubernetes", "Understanding Kubernetes in a visual way",
		"Sketchnotes about cloud native concepts.", string(entity.English),
		"Amphi A", start, start.Add(50*time.Minute), []string{"aurelievache"}); err != nil {
		log.Fatalf("seed talk: %v", err)
	}
	fmt.Println("seeded talk understanding-kubernetes")
}
