package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/empdesk/auth-service/config"
	"github.com/empdesk/auth-service/internal/domain/entity"
	"github.com/empdesk/auth-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO employees (name, email, phone, username, password_hash, title, status, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()
		RETURNING id
	`, "Demo Employee", "demo@example.com", "+15550100000", username, hash,
		entity.DefaultTitle, entity.StatusNew, entity.RoleBase).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed employee: %v", err)
	}
	fmt.Printf("seeded employee: id=%s username=%s password=%s\n", id, username, password)
}
