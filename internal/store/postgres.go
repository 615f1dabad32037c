// Package store provides feedback storage backends for CogniScreen.
//
// This file implements the PostgreSQL-backed feedback store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "embed"

	"github.com/cogniscreen/cogniscreen/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists feedback records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgresStore initialized")
	return &PostgresStore{db: db}, nil
}

// AddFeedback inserts one feedback row.
func (s *PostgresStore) AddFeedback(record models.FeedbackRecord) error {
	answersJSON, err := json.Marshal(models.PadAnswers(record.Answers))
	if err != nil {
		slog.Error("PostgresStore AddFeedback marshal failed", "error", err, "id", record.ID)
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO feedback (id, answers, predicted_label, confidence, created_at) VALUES ($1, $2, $3, $4, $5)`,
		record.ID, string(answersJSON), record.PredictedLabel, record.Confidence, record.CreatedAt)
	if err != nil {
		slog.Error("PostgresStore AddFeedback failed", "error", err, "id", record.ID)
		return fmt.Errorf("failed to insert feedback %s: %w", record.ID, err)
	}
	slog.Debug("PostgresStore AddFeedback succeeded", "id", record.ID, "label", record.PredictedLabel)
	return nil
}

// ListFeedback returns all feedback rows in insertion order.
func (s *PostgresStore) ListFeedback() ([]models.FeedbackRecord, error) {
	rows, err := s.db.Query(`SELECT id, answers, predicted_label, confidence, created_at FROM feedback ORDER BY created_at`)
	if err != nil {
		slog.Error("PostgresStore ListFeedback query failed", "error", err)
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		record, err := scanFeedback(rows)
		if err != nil {
			slog.Error("PostgresStore ListFeedback scan failed", "error", err)
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore ListFeedback rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}
	slog.Debug("PostgresStore ListFeedback succeeded", "count", len(records))
	return records, nil
}

// ClearFeedback deletes all feedback rows (for tests).
func (s *PostgresStore) ClearFeedback() error {
	_, err := s.db.Exec("DELETE FROM feedback")
	if err != nil {
		slog.Error("PostgresStore ClearFeedback failed", "error", err)
		return err
	}
	return nil
}

// Close closes the Postgres connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres connection")
	return s.db.Close()
}
