package main

import (
	"log"

	"github.com/ianmeigh/property-direct-backend/internal"
)

func main() {
	app, err := internal.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Application stopped with error: %v", err)
	}
}
