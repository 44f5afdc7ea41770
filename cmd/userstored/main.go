package main

import (
	"log"

	"github.com/mrozdorothy3-debug/swed/internal/app"
	"github.com/mrozdorothy3-debug/swed/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
