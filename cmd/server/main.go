// Package main implements the entry point for the vocabulary SRS API
// server, which schedules flashcard reviews with an FSRS-style memory
// model and exposes the study queue over HTTP.
package main

import (
	"context"
	"flag"
	"log"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	app, err := newApplication()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if *migrateCmd != "" {
		if err := app.runMigrations(*migrateCmd); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		return
	}

	if err := app.start(context.Background()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
