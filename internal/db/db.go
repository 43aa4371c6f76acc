package db

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"
)

func InitDB(dbURL string) *sql.DB {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal("cannot open database:", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("database not responding:", err)
	}

	log.Println("database connected")
	return db
}

func RunMigrations(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			phone VARCHAR(20) NOT NULL,
			brand_name TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			credits INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		);`,
		// Uniqueness is enforced here, not in the workflow: two concurrent
		// registrations can both pass the lookup, only one insert wins.
		`CREATE UNIQUE INDEX IF NOT EXISTS accounts_live_email_idx
			ON accounts (lower(email)) WHERE deleted_at IS NULL;`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatal("migration failed:", err)
		}
	}
	log.Println("migrations applied")
}
