package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cogniscreen/cogniscreen/internal/models"
)

// scanFeedback scans a FeedbackRecord from sql.Rows, decoding the JSON
// answers column back into the fixed-width slot slice.
func scanFeedback(rows *sql.Rows) (models.FeedbackRecord, error) {
	var record models.FeedbackRecord
	var answersJSON string
	if err := rows.Scan(&record.ID, &answersJSON, &record.PredictedLabel, &record.Confidence, &record.CreatedAt); err != nil {
		return record, fmt.Errorf("scan feedback failed: %w", err)
	}
	if err := json.Unmarshal([]byte(answersJSON), &record.Answers); err != nil {
		return record, fmt.Errorf("decode answers column failed: %w", err)
	}
	return record, nil
}
