package main

import (
	"log"

	"bitescout.app/bitescout/internal/config"
	"bitescout.app/bitescout/internal/model"
	"bitescout.app/bitescout/internal/server"
	"bitescout.app/bitescout/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	srv, err := server.NewServer(db, cfg)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
