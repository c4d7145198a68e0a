package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/tuanthaoreal/storebot/core/cmd"
	"github.com/tuanthaoreal/storebot/internal/app"
)

func main() {
	// Optional .env for local runs; real deployments set the environment.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        app.LoadConfig,
		Bootstrap:         app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("storebot: %v", err)
	}
}
