package main

import (
	"log"

	"github.com/unklstewy/term-torus/pkg/config"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	app := NewApp(cfg)
	if err := app.Run(); err != nil {
		log.Fatalf("Dashboard failed: %v", err)
	}
}
