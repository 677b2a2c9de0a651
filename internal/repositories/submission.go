package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lendfolio/lendfolio/internal/db"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/lendfolio/lendfolio/internal/models"
)

// ErrSubmissionNotFound covers both a missing id and a submission owned by a
// different user; callers cannot distinguish the two.
var ErrSubmissionNotFound = errors.NewSentinel("submission not found")

type SubmissionRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewSubmissionRepository(dbs *db.Database, logger *slog.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		dbs:    dbs,
		logger: logger.With("source", "SubmissionRepository"),
	}
}

type submissionRow struct {
	ID          string         `db:"id"`
	UserID      []byte         `db:"user_id"`
	AnswersJSON string         `db:"answers_json"`
	SummaryText sql.NullString `db:"summary_text"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

// Create persists a new submission for the user and returns it.
func (r *SubmissionRepository) Create(
	ctx context.Context,
	userID []byte,
	answers intake.Answers,
	summary string,
) (*models.Submission, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, errors.Wrap(err, "marshal answers")
	}

	submission := models.Submission{
		ID:        uuid.NewString(),
		UserID:    userID,
		Answers:   answers.Clone(),
		Summary:   summary,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	submission.UpdatedAt = submission.CreatedAt

	stmt := `INSERT INTO submissions (id, user_id, answers_json, summary_text, created_at, updated_at)
VALUES (:id, :user_id, :answers_json, :summary_text, :created_at, :updated_at)`
	if _, err = r.dbs.ReadWrite.NamedExecContext(ctx, stmt, submissionRow{
		ID:          submission.ID,
		UserID:      submission.UserID,
		AnswersJSON: string(answersJSON),
		SummaryText: nullString(summary),
		CreatedAt:   submission.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   submission.UpdatedAt.Format(time.RFC3339),
	}); err != nil {
		return nil, errors.Wrap(err, "insert submission")
	}

	return &submission, nil
}

// Update overwrites the answers and summary of a submission owned by userID.
// Last write wins; repeating an identical update leaves the stored state
// unchanged.
func (r *SubmissionRepository) Update(
	ctx context.Context,
	id string,
	userID []byte,
	answers intake.Answers,
	summary string,
) error {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return errors.Wrap(err, "marshal answers")
	}

	stmt := `UPDATE submissions
SET answers_json = ?, summary_text = ?, updated_at = ?
WHERE id = ? AND user_id = ?`
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		string(answersJSON),
		nullString(summary),
		time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		id,
		userID,
	)
	if err != nil {
		return errors.Wrap(err, "update submission")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrap(ErrSubmissionNotFound, "update submission", slog.String("id", id))
	}
	return nil
}

// Get fetches a submission owned by userID.
func (r *SubmissionRepository) Get(ctx context.Context, id string, userID []byte) (*models.Submission, error) {
	var row submissionRow
	stmt := `SELECT id, user_id, answers_json, summary_text, created_at, updated_at
FROM submissions
WHERE id = ? AND user_id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &row, stmt, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrSubmissionNotFound, "get submission", slog.String("id", id))
		}
		return nil, errors.Wrap(err, "get submission")
	}
	return row.toModel()
}

func (row submissionRow) toModel() (*models.Submission, error) {
	var answers intake.Answers
	if err := json.Unmarshal([]byte(row.AnswersJSON), &answers); err != nil {
		return nil, errors.Wrap(err, "unmarshal answers", slog.String("id", row.ID))
	}

	createdAt, err := time.Parse(time.RFC3339, row.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "parse created_at", slog.String("id", row.ID))
	}
	updatedAt, err := time.Parse(time.RFC3339, row.UpdatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "parse updated_at", slog.String("id", row.ID))
	}

	return &models.Submission{
		ID:        row.ID,
		UserID:    row.UserID,
		Answers:   answers,
		Summary:   row.SummaryText.String,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
