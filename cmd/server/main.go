package main

import (
	"log"

	"meal-planner/internal/api"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/websocket"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	router := api.SetupRouter(db, hub, cfg)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
