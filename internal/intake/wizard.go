package intake

import (
	"context"

	"github.com/lendfolio/lendfolio/internal/errors"
)

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Turn is one entry of the display transcript. The transcript is append-only
// and never replayed as input.
type Turn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
}

// State is the serializable wizard state. It round-trips through JSON for
// session storage, which also normalizes answer numbers to float64.
type State struct {
	Answers    Answers `json:"answers"`
	Transcript []Turn  `json:"transcript"`
	// CurrentID is the question awaiting an answer, or "" once complete.
	CurrentID string `json:"currentId"`
}

// DraftSaver persists the answer set when the flow completes.
type DraftSaver interface {
	SaveDraft(ctx context.Context, answers Answers) error
}

// ErrDraftSave marks a failed automatic draft save at flow completion. The
// wizard state has still advanced; the caller surfaces the failure and the
// user can retry with an explicit save.
var ErrDraftSave = errors.NewSentinel("draft save failed")

// ErrFlowComplete is returned when an answer arrives after the flow ended.
var ErrFlowComplete = errors.NewSentinel("intake flow is already complete")

const completionMessage = `Great, your intake is complete. Click "Generate Package" to create your loan summary.`

// Wizard drives the one-question-at-a-time intake conversation. It is not
// safe for concurrent use; each session owns exactly one wizard and requests
// against it are serialized.
type Wizard struct {
	questions *QuestionSet
	saver     DraftSaver
	state     State
}

// NewWizard starts a fresh conversation at the first question. saver may be
// nil when draft persistence is not wired, e.g. in the CLI.
func NewWizard(questions *QuestionSet, saver DraftSaver) *Wizard {
	w := &Wizard{
		questions: questions,
		saver:     saver,
		state: State{
			Answers:   make(Answers),
			CurrentID: questions.FirstID(),
		},
	}
	if first, ok := questions.Question(w.state.CurrentID); ok {
		w.state.Transcript = append(w.state.Transcript, Turn{Role: RoleAssistant, Message: first.Prompt})
	}
	return w
}

// RestoreWizard resumes a conversation from previously stored state.
func RestoreWizard(questions *QuestionSet, saver DraftSaver, state State) *Wizard {
	if state.Answers == nil {
		state.Answers = make(Answers)
	}
	return &Wizard{questions: questions, saver: saver, state: state}
}

// State snapshots the wizard for storage.
func (w *Wizard) State() State {
	state := State{
		Answers:    w.state.Answers.Clone(),
		Transcript: make([]Turn, len(w.state.Transcript)),
		CurrentID:  w.state.CurrentID,
	}
	copy(state.Transcript, w.state.Transcript)
	return state
}

// Current returns the question awaiting an answer. ok is false once the flow
// is complete.
func (w *Wizard) Current() (Question, bool) {
	if w.state.CurrentID == "" {
		return Question{}, false
	}
	return w.questions.Question(w.state.CurrentID)
}

func (w *Wizard) Complete() bool {
	return w.state.CurrentID == ""
}

func (w *Wizard) Answers() Answers {
	return w.state.Answers.Clone()
}

func (w *Wizard) Transcript() []Turn {
	transcript := make([]Turn, len(w.state.Transcript))
	copy(transcript, w.state.Transcript)
	return transcript
}

func (w *Wizard) Progress() (completed, total int) {
	return w.questions.Progress(w.state.Answers)
}

// SubmitAnswer validates the candidate answer for the current question and
// advances the conversation.
//
// On a validation failure the returned error is a *ValidationError and
// neither the answer set nor the transcript is touched. On success the
// normalized value is recorded, the user turn and the following assistant
// turn are appended, and the wizard either awaits the next question or
// completes. Entering the complete state triggers an automatic draft save;
// a save failure is reported wrapped in ErrDraftSave after the state has
// advanced.
func (w *Wizard) SubmitAnswer(ctx context.Context, raw string) error {
	current, ok := w.Current()
	if !ok {
		return errors.Wrap(ErrFlowComplete, "submit answer")
	}

	value, err := ValidateAnswer(current, raw)
	if err != nil {
		return err
	}

	w.state.Answers[current.ID] = value
	w.state.Transcript = append(w.state.Transcript, Turn{
		Role:    RoleUser,
		Message: FormatValue(current, value),
	})

	nextID := w.questions.NextQuestionID(current.ID, w.state.Answers)
	if next, found := w.questions.Question(nextID); nextID != "" && found {
		w.state.CurrentID = nextID
		w.state.Transcript = append(w.state.Transcript, Turn{Role: RoleAssistant, Message: next.Prompt})
		return nil
	}

	w.state.CurrentID = ""
	w.state.Transcript = append(w.state.Transcript, Turn{Role: RoleAssistant, Message: completionMessage})

	if w.saver != nil {
		if err = w.saver.SaveDraft(ctx, w.state.Answers.Clone()); err != nil {
			return errors.Wrap(errors.Join(ErrDraftSave, err), "automatic draft save")
		}
	}
	return nil
}
