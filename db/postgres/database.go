package postgres

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Db struct {
	PostgresClient *sql.DB
}

// ConnectDB establishes a connection to the PostgreSQL database,
// retrying while the database comes up.
func ConnectDB() *Db {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
	)

	var db *sql.DB
	var err error
	maxRetries, _ := strconv.Atoi(os.Getenv("MAX_DB_ATTEMPTS"))
	if maxRetries == 0 {
		maxRetries = 10
	}

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", connStr)
		if err != nil {
			log.Printf("Attempt %d: failed to open database connection: %v", i+1, err)
			time.Sleep(2 * time.Second)
			continue
		}

		if err = db.Ping(); err == nil {
			log.Println("Connected to PostgreSQL database")
			return &Db{PostgresClient: db}
		}

		log.Printf("Attempt %d: failed to ping PostgreSQL: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}

	log.Fatalf("Exceeded max retries. Could not connect to PostgreSQL: %v", err)
	return nil
}

// Stop gracefully closes the PostgreSQL connection.
func (db *Db) Stop() {
	if db.PostgresClient != nil {
		if err := db.PostgresClient.Close(); err != nil {
			log.Printf("Error closing PostgreSQL connection: %v", err)
		}
	}
}

// InitSchema creates the orders and trades tables. The schema is
// embedded so the binary does not depend on its working directory.
func (db *Db) InitSchema() error {
	if _, err := db.PostgresClient.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
