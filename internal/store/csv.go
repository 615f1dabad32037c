// Package store provides feedback storage backends for CogniScreen.
//
// This file implements the append-only CSV file store. The layout matches
// the historical feedback.csv: a header row written once on file creation,
// then one fixed-width row per diagnosed conversation.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"github.com/cogniscreen/cogniscreen/internal/models"
)

// CSVStore appends feedback rows to a flat CSV file. Appends are serialized
// by a process mutex plus an exclusive flock on the file, so the existence
// check for the header and the first write form one critical section even
// across processes sharing the file.
type CSVStore struct {
	mu   sync.Mutex
	path string
}

// NewCSVStore creates a CSV store at the configured path, creating the
// parent directory if needed. The file itself is created lazily on the
// first append so an empty store leaves no artifact behind.
func NewCSVStore(opts ...Option) (*CSVStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("CSVStore path not set")
		return nil, fmt.Errorf("csv store path not set")
	}
	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("Failed to create CSV store directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create csv store directory: %w", err)
	}
	slog.Debug("CSVStore initialized", "path", cfg.DSN)
	return &CSVStore{path: cfg.DSN}, nil
}

// csvHeader returns the fixed column header: ten scripted answer slots,
// five follow-up slots, then the prediction columns.
func csvHeader() []string {
	header := make([]string, 0, models.FeedbackAnswerSlots+2)
	for i := 0; i < 10; i++ {
		header = append(header, fmt.Sprintf("Q%d", i+1))
	}
	for i := 0; i < models.FeedbackAnswerSlots-10; i++ {
		header = append(header, fmt.Sprintf("Followup%d", i+1))
	}
	return append(header, "Predicted Label", "Confidence (%)")
}

// AddFeedback appends one row, writing the header first when the file is
// empty. Header check and write happen under the flock so concurrent
// first-time writers cannot produce a duplicate header.
func (s *CSVStore) AddFeedback(record models.FeedbackRecord) error {
	if len(record.Answers) != models.FeedbackAnswerSlots {
		return fmt.Errorf("feedback record must carry %d answer slots, got %d", models.FeedbackAnswerSlots, len(record.Answers))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("CSVStore AddFeedback open failed", "error", err, "path", s.path)
		return fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer file.Close()

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		slog.Error("CSVStore AddFeedback flock failed", "error", err, "path", s.path)
		return fmt.Errorf("failed to lock feedback file: %w", err)
	}
	defer syscall.Flock(int(file.Fd()), syscall.LOCK_UN)

	info, err := file.Stat()
	if err != nil {
		slog.Error("CSVStore AddFeedback stat failed", "error", err, "path", s.path)
		return fmt.Errorf("failed to stat feedback file: %w", err)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write(csvHeader()); err != nil {
			slog.Error("CSVStore AddFeedback header write failed", "error", err, "path", s.path)
			return fmt.Errorf("failed to write feedback header: %w", err)
		}
		slog.Debug("CSVStore AddFeedback wrote header", "path", s.path)
	}

	row := make([]string, 0, models.FeedbackAnswerSlots+2)
	row = append(row, record.Answers...)
	row = append(row, record.PredictedLabel, strconv.Itoa(record.Confidence))
	if err := writer.Write(row); err != nil {
		slog.Error("CSVStore AddFeedback row write failed", "error", err, "path", s.path)
		return fmt.Errorf("failed to write feedback row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Error("CSVStore AddFeedback flush failed", "error", err, "path", s.path)
		return fmt.Errorf("failed to flush feedback row: %w", err)
	}

	slog.Debug("CSVStore AddFeedback succeeded", "path", s.path, "label", record.PredictedLabel)
	return nil
}

// ListFeedback reads the rows back. The CSV layout carries no record IDs or
// timestamps, so those fields are empty in the returned records.
func (s *CSVStore) ListFeedback() ([]models.FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		slog.Error("CSVStore ListFeedback open failed", "error", err, "path", s.path)
		return nil, fmt.Errorf("failed to open feedback file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = models.FeedbackAnswerSlots + 2

	var records []models.FeedbackRecord
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Error("CSVStore ListFeedback read failed", "error", err, "path", s.path)
			return nil, fmt.Errorf("failed to read feedback row: %w", err)
		}
		if first {
			first = false
			continue // header
		}
		confidence, err := strconv.Atoi(row[models.FeedbackAnswerSlots+1])
		if err != nil {
			slog.Error("CSVStore ListFeedback bad confidence column", "error", err, "path", s.path)
			return nil, fmt.Errorf("failed to parse confidence column: %w", err)
		}
		answers := make([]string, models.FeedbackAnswerSlots)
		copy(answers, row[:models.FeedbackAnswerSlots])
		records = append(records, models.FeedbackRecord{
			Answers:        answers,
			PredictedLabel: row[models.FeedbackAnswerSlots],
			Confidence:     confidence,
		})
	}
	slog.Debug("CSVStore ListFeedback succeeded", "path", s.path, "count", len(records))
	return records, nil
}

// Close is a no-op; the file handle is opened per append.
func (s *CSVStore) Close() error {
	return nil
}
