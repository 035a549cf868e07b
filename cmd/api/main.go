package main

import (
	"context"
	"log"

	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/server"
	"cv-backend/internal/shared/storage/memdb"
	"cv-backend/internal/shared/telemetry"
	"cv-backend/internal/users"
)

func main() {
	cfg := config.Load()

	db := memdb.New()
	if err := db.Connect(); err != nil {
		log.Fatalf("connect store: %v", err)
	}
	defer db.Disconnect()

	seedUsers(db, cfg.SeedUsers)

	r := server.NewRouter(cfg, db)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// seedUsers preloads dev fixtures into the freshly connected store.
func seedUsers(db *memdb.DB, seeds []config.SeedUser) {
	if len(seeds) == 0 {
		return
	}
	svc := users.NewService(users.NewMemDBRepo(db))
	for _, seed := range seeds {
		_, err := svc.Create(context.Background(), users.User{
			ID:    seed.ID,
			Name:  seed.Name,
			Email: seed.Email,
		})
		if err != nil {
			telemetry.Warn("seed user skipped", map[string]any{
				"user_id": seed.ID,
				"error":   err.Error(),
			})
			continue
		}
		telemetry.Info("seed user created", map[string]any{"user_id": seed.ID})
	}
}
