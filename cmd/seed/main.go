package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/taskloop/taskloop/config"
	"github.com/taskloop/taskloop/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	creatorID := seedUser(db, "alice@example.com", "password123", "Alice Demo")
	assigneeID := seedUser(db, "bob@example.com", "password123", "Bob Demo")

	var taskID string
	err = db.QueryRow(`
		INSERT INTO tasks (created_by_uid, created_by_name, assigned_to_uid, assigned_to_name, description, done)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id
	`, creatorID, "Alice Demo", assigneeID, "Bob Demo", "Review the onboarding checklist").Scan(&taskID)
	if err != nil {
		log.Fatalf("failed to seed task: %v", err)
	}
	fmt.Printf("seeded task: id=%s creator=%s assignee=%s\n", taskID, creatorID, assigneeID)
}

func seedUser(db *sql.DB, email, password, name string) string {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash, name).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", id, email, name, password)
	return id
}
