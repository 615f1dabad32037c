// Package store provides feedback storage backends for CogniScreen.
//
// This file implements the SQLite-backed feedback store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/cogniscreen/cogniscreen/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists feedback records in an SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLiteStore initialized", "path", cfg.DSN)
	return &SQLiteStore{db: db}, nil
}

// AddFeedback inserts one feedback row.
func (s *SQLiteStore) AddFeedback(record models.FeedbackRecord) error {
	answersJSON, err := json.Marshal(models.PadAnswers(record.Answers))
	if err != nil {
		slog.Error("SQLiteStore AddFeedback marshal failed", "error", err, "id", record.ID)
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO feedback (id, answers, predicted_label, confidence, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.ID, string(answersJSON), record.PredictedLabel, record.Confidence, record.CreatedAt)
	if err != nil {
		slog.Error("SQLiteStore AddFeedback failed", "error", err, "id", record.ID)
		return fmt.Errorf("failed to insert feedback %s: %w", record.ID, err)
	}
	slog.Debug("SQLiteStore AddFeedback succeeded", "id", record.ID, "label", record.PredictedLabel)
	return nil
}

// ListFeedback returns all feedback rows in insertion order.
func (s *SQLiteStore) ListFeedback() ([]models.FeedbackRecord, error) {
	rows, err := s.db.Query(`SELECT id, answers, predicted_label, confidence, created_at FROM feedback ORDER BY created_at`)
	if err != nil {
		slog.Error("SQLiteStore ListFeedback query failed", "error", err)
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		record, err := scanFeedback(rows)
		if err != nil {
			slog.Error("SQLiteStore ListFeedback scan failed", "error", err)
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore ListFeedback rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}
	slog.Debug("SQLiteStore ListFeedback succeeded", "count", len(records))
	return records, nil
}

// ClearFeedback deletes all feedback rows (for tests).
func (s *SQLiteStore) ClearFeedback() error {
	_, err := s.db.Exec("DELETE FROM feedback")
	if err != nil {
		slog.Error("SQLiteStore ClearFeedback failed", "error", err)
		return err
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	return s.db.Close()
}
