// Package store provides feedback storage backends for CogniScreen.
//
// It includes an in-memory store, an append-only CSV file store matching
// the historical feedback.csv layout, and SQLite/Postgres stores. Backends
// serialize concurrent appends; a feedback row is written exactly once per
// diagnosed conversation and never updated afterward.
package store

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cogniscreen/cogniscreen/internal/models"
)

// FeedbackStore is the storage contract consumed by the triage controller
// and the operator API.
type FeedbackStore interface {
	// AddFeedback appends one feedback record. Append-only: implementations
	// never modify earlier rows.
	AddFeedback(record models.FeedbackRecord) error

	// ListFeedback returns all recorded feedback in append order.
	ListFeedback() ([]models.FeedbackRecord, error)

	// Close releases any underlying resources.
	Close() error
}

// Opts holds configuration for store backends.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithSQLiteDSN configures an SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithPostgresDSN configures a PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithCSVPath configures an append-only CSV file path.
func WithCSVPath(path string) Option {
	return func(o *Opts) { o.DSN = path }
}

// DetectDSNType classifies a DSN as "postgres", "csv", or "sqlite" so the
// factory and main can agree on backend selection.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	if strings.HasSuffix(dsn, ".csv") {
		return "csv"
	}
	return "sqlite"
}

// New builds the feedback store selected by the options: Postgres for
// Postgres DSNs, the CSV file store for .csv paths, SQLite for other file
// paths, and in-memory when no DSN is configured.
func New(opts ...Option) (FeedbackStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Debug("store.New: no DSN configured, using in-memory store")
		return NewInMemoryStore(), nil
	}
	switch kind := DetectDSNType(cfg.DSN); kind {
	case "postgres":
		slog.Debug("store.New: selecting Postgres store")
		return NewPostgresStore(opts...)
	case "csv":
		slog.Debug("store.New: selecting CSV store", "path", cfg.DSN)
		return NewCSVStore(opts...)
	default:
		slog.Debug("store.New: selecting SQLite store", "path", cfg.DSN)
		return NewSQLiteStore(opts...)
	}
}

// InMemoryStore keeps feedback records in memory, for tests and for running
// without any persistence configured.
type InMemoryStore struct {
	mu      sync.Mutex
	records []models.FeedbackRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// AddFeedback appends a record under the store mutex.
func (s *InMemoryStore) AddFeedback(record models.FeedbackRecord) error {
	if len(record.Answers) != models.FeedbackAnswerSlots {
		return fmt.Errorf("feedback record must carry %d answer slots, got %d", models.FeedbackAnswerSlots, len(record.Answers))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// ListFeedback returns a copy of the recorded feedback.
func (s *InMemoryStore) ListFeedback() ([]models.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]models.FeedbackRecord, len(s.records))
	copy(records, s.records)
	return records, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
