package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lendfolio/lendfolio/internal/e2etest"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/logging"
)

// TestIntake walks the guided intake end to end and verifies the derived
// checklist. Summary generation is left out so the smoke test never spends
// model tokens.
func TestIntake(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.CompleteIntake(ctx, []string{
		"LLC",
		"Multifamily",
		"250000",
		"720",
		"1200000",
		"0-30 days",
		"Smoke test submission, safe to ignore.",
	})
	if err != nil {
		return errors.Wrap(err, "complete intake")
	}

	if doc.Find(".checklist li").Length() == 0 {
		return errors.New("checklist missing after completed intake")
	}

	if doc, err = client.SubmitForm(ctx, doc, "/assistant/reset", nil); err != nil {
		return errors.Wrap(err, "reset assistant")
	}
	if doc.Find(".turn-assistant").Length() != 1 {
		return errors.New("reset did not restart the conversation")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestIntake(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing intake", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
