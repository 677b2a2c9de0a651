package errors_test

import (
	"log/slog"
	"testing"

	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	sentinel := errors.NewSentinel("not found")

	wrapped := errors.Wrap(sentinel, "lookup submission", slog.String("id", "abc"))
	doubleWrapped := errors.Wrap(wrapped, "save package")

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, errors.Is(doubleWrapped, sentinel))
	assert.Equal(t, "lookup submission: not found", wrapped.Error())
	assert.Equal(t, "save package: lookup submission: not found", doubleWrapped.Error())
}

func TestLogValueIncludesSourceAndAttrs(t *testing.T) {
	err := errors.New("boom", slog.String("detail", "db on fire"))

	valuer, ok := err.(slog.LogValuer)
	require.True(t, ok, "annotated errors must implement slog.LogValuer")

	group := valuer.LogValue().Group()
	attrs := make(map[string]string, len(group))
	for _, attr := range group {
		attrs[attr.Key] = attr.Value.String()
	}

	assert.Equal(t, "boom", attrs["msg"])
	assert.Contains(t, attrs["source"], "errors_test.go")
	assert.Equal(t, "db on fire", attrs["detail"])
}

func TestJoinCollectsErrors(t *testing.T) {
	first := errors.NewSentinel("first")
	second := errors.NewSentinel("second")

	joined := errors.Join(first, second)

	assert.True(t, errors.Is(joined, first))
	assert.True(t, errors.Is(joined, second))
}
