// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// setupTestDB() goes through the repository's CreateTable, which applies
// db.GetSchemaSQL(), so tests always run against the authoritative schema.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/example/visa/internal/adapters/sqlite"
	"github.com/example/visa/internal/db"
	"github.com/example/visa/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.Open(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := sqlite.NewEstablishmentRepository(testDB).CreateTable(context.Background()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// newRecord returns a registration-only record for the given tax ID.
func newRecord(name, taxID string) *secondary.EstablishmentRecord {
	return &secondary.EstablishmentRecord{
		Name:                 name,
		TaxID:                taxID,
		Group:                "ALIMENTOS",
		ActivityCode:         "5611-2/01",
		RiskGrade:            "ALTO RISCO",
		ResponsiblePerson:    "Maria Souza",
		ResponsiblePersonID:  "123.456.789-09",
		Address:              "Rua das Flores, 100",
		Phone:                "(19) 3232-1000",
		Email:                "contato@example.com",
		ArchitecturalProject: "APROVADO E EXECUTADO",
	}
}

// seedEstablishment inserts a record through the repository and returns its ID.
func seedEstablishment(t *testing.T, repo *sqlite.EstablishmentRepository, record *secondary.EstablishmentRecord) int64 {
	t.Helper()

	id, err := repo.Create(context.Background(), record)
	if err != nil {
		t.Fatalf("failed to seed establishment %s: %v", record.TaxID, err)
	}
	return id
}

// countRows returns the number of establishment rows.
func countRows(t *testing.T, database *sql.DB) int {
	t.Helper()

	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM estabelecimentos").Scan(&n); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
