package store

import (
	"path/filepath"
	"testing"

	"github.com/cogniscreen/cogniscreen/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(WithSQLiteDSN(filepath.Join(t.TempDir(), "feedback.db")))
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)

	want := sampleRecord("OCD", 93)
	if err := st.AddFeedback(want); err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}

	records, err := st.ListFeedback()
	if err != nil {
		t.Fatalf("ListFeedback failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ID != want.ID || got.PredictedLabel != "OCD" || got.Confidence != 93 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if len(got.Answers) != models.FeedbackAnswerSlots {
		t.Fatalf("expected %d answer slots, got %d", models.FeedbackAnswerSlots, len(got.Answers))
	}
	if got.Answers[0] != "answer one" || got.Answers[2] != "" {
		t.Errorf("answer slots not preserved: %v", got.Answers)
	}
}

func TestSQLiteStoreDuplicateIDRejected(t *testing.T) {
	st := newTestSQLiteStore(t)

	record := sampleRecord("Anxiety", 88)
	if err := st.AddFeedback(record); err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}
	if err := st.AddFeedback(record); err == nil {
		t.Error("expected duplicate primary key to be rejected")
	}
}

func TestSQLiteStoreClearFeedback(t *testing.T) {
	st := newTestSQLiteStore(t)

	if err := st.AddFeedback(sampleRecord("Depression", 89)); err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}
	if err := st.ClearFeedback(); err != nil {
		t.Fatalf("ClearFeedback failed: %v", err)
	}
	records, err := st.ListFeedback()
	if err != nil {
		t.Fatalf("ListFeedback failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records after clear, got %d", len(records))
	}
}

func TestSQLiteStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "feedback.db")
	st, err := NewSQLiteStore(WithSQLiteDSN(path))
	if err != nil {
		t.Fatalf("expected directory to be created: %v", err)
	}
	st.Close()
}
