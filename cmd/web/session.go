package main

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/lendfolio/lendfolio/internal/contexthelpers"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/lendfolio/lendfolio/internal/repositories"
)

const (
	userIDSessionKey       = "userID"
	wizardStateSessionKey  = "wizardState"
	submissionIDSessionKey = "submissionID"
	summarySessionKey      = "summaryText"
	savedSessionKey        = "submissionSaved"
	flashSessionKey        = "flash"
)

var errNotAuthenticated = errors.NewSentinel("request has no authenticated user")

// loadWizard restores the session's conversation, starting a fresh one when
// the session has no stored state or the state fails to decode.
func (app *application) loadWizard(ctx context.Context) *intake.Wizard {
	encoded := app.sessionManager.GetString(ctx, wizardStateSessionKey)
	if encoded == "" {
		return intake.NewWizard(app.questions, app.draftSaver())
	}

	var state intake.State
	if err := json.Unmarshal([]byte(encoded), &state); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "discarding undecodable wizard state",
			errors.SlogError(errors.Wrap(err, "decode wizard state")))
		return intake.NewWizard(app.questions, app.draftSaver())
	}

	return intake.RestoreWizard(app.questions, app.draftSaver(), state)
}

func (app *application) storeWizard(ctx context.Context, wizard *intake.Wizard) error {
	encoded, err := json.Marshal(wizard.State())
	if err != nil {
		return errors.Wrap(err, "encode wizard state")
	}
	app.sessionManager.Put(ctx, wizardStateSessionKey, string(encoded))
	return nil
}

// draftSaver persists an answer snapshot against the session's submission,
// creating the submission on first save. The context passed to SaveDraft
// carries both the session and the authenticated user.
func (app *application) draftSaver() intake.DraftSaver {
	return draftSaverFunc(func(ctx context.Context, answers intake.Answers) error {
		return app.persistSubmission(ctx, answers, app.sessionManager.GetString(ctx, summarySessionKey))
	})
}

type draftSaverFunc func(ctx context.Context, answers intake.Answers) error

func (f draftSaverFunc) SaveDraft(ctx context.Context, answers intake.Answers) error {
	return f(ctx, answers)
}

// persistSubmission creates or updates the session's submission with the
// given answers and summary and records the submission id in the session.
func (app *application) persistSubmission(ctx context.Context, answers intake.Answers, summary string) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)
	if userID == nil {
		return errors.Wrap(errNotAuthenticated, "persist submission")
	}

	if id := app.sessionManager.GetString(ctx, submissionIDSessionKey); id != "" {
		err := app.submissions.Update(ctx, id, userID, answers, summary)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrSubmissionNotFound) {
			return errors.Wrap(err, "update submission")
		}
		// The stored id no longer resolves, e.g. after a database reset.
		// Fall through and create a fresh submission.
		app.sessionManager.Remove(ctx, submissionIDSessionKey)
	}

	submission, err := app.submissions.Create(ctx, userID, answers, summary)
	if err != nil {
		return errors.Wrap(err, "create submission")
	}
	app.sessionManager.Put(ctx, submissionIDSessionKey, submission.ID)
	return nil
}
