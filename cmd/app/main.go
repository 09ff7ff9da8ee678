package main

import (
	"flag"
	"log"
	"os"

	"NewsPulse/internal/di"
	"NewsPulse/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	stage := flag.String("stage", "all", "pipeline stage: screener, news, or all")
	flag.Parse()

	// Optional .env for API tokens; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s stage=%s backend=%s", cfg.Environment, *stage, cfg.Backend.Type)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(*stage); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
