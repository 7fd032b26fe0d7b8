// seed inserts a demo user and a batch of jobs into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/medetbek/taskqueue/internal/domain"
	"github.com/medetbek/taskqueue/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password-123"
)

type jobSpec struct {
	title       string
	description string
	status      domain.Status
}

var jobs = []jobSpec{
	// Fresh jobs — still in the initial state
	{"Draft Q3 report", "Outline plus first pass over the numbers", domain.StatusQueued},
	{"Summarize meeting notes", "Monday standup + planning session", domain.StatusQueued},
	{"Clean up inbox", "", domain.StatusQueued},
	{"Translate onboarding doc", "EN -> KK", domain.StatusQueued},

	// Picked up by their owner
	{"Review PR backlog", "Everything older than a week", domain.StatusTodo},
	{"Prepare demo script", "", domain.StatusTodo},
	{"Write release notes", "v0.4.0", domain.StatusInProgress},
	{"Index legacy documents", "Batch 3 of 7", domain.StatusInProgress},

	// Finished — janitor candidates once they age out
	{"Fix flaky login test", "", domain.StatusDone},
	{"Rotate staging secrets", "", domain.StatusDone},
	{"Archive 2024 invoices", "Move to cold storage", domain.StatusDone},
	{"Update dependency pins", "", domain.StatusDone},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		pool.Close()
		log.Fatalf("hash password: %v", err)
	}

	// Upsert demo user (idempotent re-runs)
	var userID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, username, email, password_hash)
		VALUES ('Seed', 'User', 'seeduser', $1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		pool.Close()
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	var jobIDs []int64

	for _, spec := range jobs {
		var desc *string
		if spec.description != "" {
			desc = &spec.description
		}
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO jobs (user_id, title, description, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			userID, spec.title, desc, spec.status,
		).Scan(&id)
		if err != nil {
			pool.Close()
			log.Fatalf("insert job %q: %v", spec.title, err)
		}
		jobIDs = append(jobIDs, id)
		inserted++
	}

	pool.Close()

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:         %s\n", seedEmail)
	fmt.Printf("  Password:     %s\n", seedPassword)
	fmt.Printf("  User ID:      %d\n", userID)
	fmt.Printf("  Jobs created: %d\n", inserted)
	fmt.Println()

	if len(jobIDs) > 0 {
		fmt.Println("  Sample job IDs:")
		limit := 5
		if len(jobIDs) < limit {
			limit = len(jobIDs)
		}
		for _, id := range jobIDs[:limit] {
			fmt.Printf("    %d\n", id)
		}
	}

	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # → {\"token\":\"eyJ...\",\"user\":{...}}")
	fmt.Println()
	fmt.Println("  Step 2 — query a job (use any ID from above):")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/jobs/JOB_ID -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	fmt.Println("  Step 3 — move it through the board:")
	fmt.Println()
	fmt.Println("    curl -s -X PUT http://localhost:8080/jobs/JOB_ID/status \\")
	fmt.Println("      -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"status\":\"DONE\"}'")
}
