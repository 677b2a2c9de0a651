package models

import (
	"time"

	"github.com/lendfolio/lendfolio/internal/intake"
)

// Submission is a persisted intake: the structured answer set and, once
// generated, the summary prose. The rendered package document itself is
// never stored; it is rebuilt on demand.
type Submission struct {
	ID      string
	UserID  []byte
	Answers intake.Answers
	// Summary is empty until a summary has been generated and saved.
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
