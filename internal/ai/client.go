// Package ai wraps the OpenAI chat completion API for loan package summary
// generation.
package ai

import (
	"context"
	"strings"

	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/sashabaranov/go-openai"
)

var (
	ErrMissingAPIKey = errors.NewSentinel("missing OpenAI API key")
	ErrEmptyInput    = errors.NewSentinel("no answered questions to summarize")
	ErrEmptySummary  = errors.NewSentinel("model returned no summary text")
)

// systemInstruction constrains the model to factual, professionally toned
// output. It is fixed for every summary request.
const systemInstruction = "You are a senior commercial lending analyst. " +
	"Write concise, factual, professional summaries only. Do not invent missing facts. " +
	"If data is missing, state assumptions clearly."

var promptPreamble = strings.Join([]string{
	"Write a professional commercial loan package summary using this borrower data.",
	"Include these sections with clear headings:",
	"1) Executive Summary",
	"2) Borrower Strengths",
	"3) Key Risks and Mitigants",
	"4) Recommended Loan Programs",
	"5) Underwriting Notes",
	"",
	"Borrower data:",
}, "\n")

const summaryTemperature = 0.2

// completionAPI is the slice of the OpenAI client the summary generator
// needs, so tests can substitute a stub.
type completionAPI interface {
	CreateChatCompletion(
		ctx context.Context,
		request openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, used to point tests at a stub server.
	BaseURL   string
	MaxTokens int
}

type Client struct {
	api       completionAPI
	model     string
	maxTokens int
}

// NewClient validates the configuration and builds the summary client.
// A missing API key is a configuration error reported up front rather than a
// blank summary later.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.Wrap(ErrMissingAPIKey, "configure summary client")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:       openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// GenerateSummary renders the summary prompt around the formatted borrower
// data and performs a single, stateless completion call. The returned prose
// is passed through verbatim. Empty input and an empty completion are
// distinct failures; neither is ever papered over with placeholder text.
func (c *Client) GenerateSummary(ctx context.Context, borrowerData string) (string, error) {
	if strings.TrimSpace(borrowerData) == "" {
		return "", errors.Wrap(ErrEmptyInput, "generate summary")
	}

	completion, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{ //nolint:exhaustruct // defaults are fine
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: summaryTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: promptPreamble + "\n" + borrowerData},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}

	if len(completion.Choices) == 0 {
		return "", errors.Wrap(ErrEmptySummary, "no completion choices")
	}
	summary := strings.TrimSpace(completion.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.Wrap(ErrEmptySummary, "blank completion content")
	}
	return summary, nil
}
