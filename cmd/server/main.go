package main

import (
	"log"

	"github.com/joho/godotenv"

	"go-todo-share/server/internal/auth"
	"go-todo-share/server/internal/config"
	"go-todo-share/server/internal/database"
	"go-todo-share/server/internal/routes"
)

func main() {
	// .envはローカル開発用。本番では環境変数を直接設定する。
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal: Failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Fatal: %v", err)
	}
	defer db.Close()
	log.Println("Successfully connected to MySQL database!")

	provider := auth.NewOAuthProvider(cfg)
	r := routes.SetupRouter(db, cfg, provider, nil)

	log.Printf("Server listening on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
