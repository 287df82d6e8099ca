package main

import (
	"fmt"
	"log"

	"github.com/peg96/FinanceBinder/internal/config"
	"github.com/peg96/FinanceBinder/internal/database"
	"github.com/peg96/FinanceBinder/internal/router"
	"github.com/peg96/FinanceBinder/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.SeedDefaultUser(db, cfg.Security.BcryptCost); err != nil {
		log.Fatalf("seed default user: %v", err)
	}

	if err := session.NewStore(db, cfg.Session.Secret, cfg.Session.ExpireHours).CleanExpired(); err != nil {
		log.Printf("clean sessions: %v", err)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
