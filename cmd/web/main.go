package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/lendfolio/lendfolio/internal/ai"
	"github.com/lendfolio/lendfolio/internal/db"
	"github.com/lendfolio/lendfolio/internal/envstruct"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
	"github.com/lendfolio/lendfolio/internal/logging"
	"github.com/lendfolio/lendfolio/internal/pdf"
	"github.com/lendfolio/lendfolio/internal/pprofserver"
	"github.com/lendfolio/lendfolio/internal/repositories"
)

// summarizer is the slice of ai.Client the handlers need. It stays nil when
// no API key is configured so the rest of the assistant keeps working.
type summarizer interface {
	GenerateSummary(ctx context.Context, borrowerData string) (string, error)
}

type application struct {
	logger         *slog.Logger
	questions      *intake.QuestionSet
	checklist      *intake.Checklist
	summarizer     summarizer
	assembler      *pdf.Assembler
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	templates      *templateCache
	users          *repositories.UserRepository
	submissions    *repositories.SubmissionRepository
}

type config struct {
	Addr             string `env:"LENDFOLIO_ADDR" envDefault:"localhost:4000"`
	PprofPort        string `env:"LENDFOLIO_PPROF_PORT" envDefault:""`
	SQLiteURL        string `env:"LENDFOLIO_SQLITE_URL" envDefault:"./lendfolio.sqlite"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel      string `env:"LENDFOLIO_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL    string `env:"LENDFOLIO_OPENAI_BASE_URL" envDefault:""`
	SummaryMaxTokens int    `env:"LENDFOLIO_SUMMARY_MAX_TOKENS" envDefault:"900"`
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server failed", errors.SlogError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	// pprof listens on localhost only so it is not open to the world.
	if cfg.PprofPort != "" {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	dbs, err := db.New(cfg.SQLiteURL)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SQLiteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database")

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	questions, err := intake.DefaultQuestionSet()
	if err != nil {
		return errors.Wrap(err, "build question set")
	}
	checklist, err := intake.DefaultChecklist()
	if err != nil {
		return errors.Wrap(err, "build checklist rules")
	}

	var summaryClient summarizer
	if cfg.OpenAIAPIKey != "" {
		client, aiErr := ai.NewClient(ai.Config{
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.OpenAIModel,
			BaseURL:   cfg.OpenAIBaseURL,
			MaxTokens: cfg.SummaryMaxTokens,
		})
		if aiErr != nil {
			return errors.Wrap(aiErr, "configure summary client")
		}
		summaryClient = client
	} else {
		logger.LogAttrs(ctx, slog.LevelWarn, "OPENAI_API_KEY not set, summary generation disabled")
	}

	templates, err := newTemplateCache()
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}

	app := application{
		logger:         logger,
		questions:      questions,
		checklist:      checklist,
		summarizer:     summaryClient,
		assembler:      pdf.NewAssembler(questions, nil),
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		templates:      templates,
		users:          repositories.NewUserRepository(dbs, logger),
		submissions:    repositories.NewSubmissionRepository(dbs, logger),
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}
