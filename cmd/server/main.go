package main

import (
	"context"
	"log"

	"github.com/avolkov/storefront/internal/server"
	"github.com/avolkov/storefront/internal/server/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("run error: %v", err)
	}
}
