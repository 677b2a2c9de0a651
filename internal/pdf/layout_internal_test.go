package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWidth gives every character a width of 6pt regardless of style, so
// wrapping behavior is easy to reason about in tests.
func fixedWidth(text string, _ style) float64 {
	return float64(len(text)) * 6
}

func TestWrap(t *testing.T) {
	body := style{size: 11, lineHeight: 16}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "fits on one line",
			text:     "short line",
			maxWidth: 100,
			want:     []string{"short line"},
		},
		{
			name:     "greedy wrap at word boundaries",
			text:     "one two three four",
			maxWidth: 60, // 10 characters
			want:     []string{"one two", "three four"},
		},
		{
			name:     "single word wider than content width stays whole",
			text:     "antidisestablishmentarianism",
			maxWidth: 60,
			want:     []string{"antidisestablishmentarianism"},
		},
		{
			name:     "over-wide word between normal words gets its own line",
			text:     "ok antidisestablishmentarianism ok",
			maxWidth: 60,
			want:     []string{"ok", "antidisestablishmentarianism", "ok"},
		},
		{
			name:     "blank text yields one empty line",
			text:     "   ",
			maxWidth: 60,
			want:     []string{""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(tt.text, body, tt.maxWidth, fixedWidth))
		})
	}
}

func TestLayoutEngine_PageBreaks(t *testing.T) {
	body := style{size: 11, lineHeight: 100}
	engine := newLayoutEngine(fixedWidth, 612, 792, 48)

	// 792 - 2*48 = 696pt of content height fits 6 lines at 100pt leading
	// before the seventh would cross the bottom margin.
	for i := 0; i < 8; i++ {
		engine.writeParagraph("line", body)
	}

	require.Len(t, engine.pages, 2)
	assert.Len(t, engine.pages[0].lines, 6)
	assert.Len(t, engine.pages[1].lines, 2)
	// The cursor resets to the top margin on the new page.
	assert.Equal(t, 792.0-48, engine.pages[1].lines[0].y)
}

func TestLayoutEngine_BlankParagraphAdvancesCursor(t *testing.T) {
	body := style{size: 11, lineHeight: 16}
	engine := newLayoutEngine(fixedWidth, 612, 792, 48)

	engine.writeParagraph("first paragraph", body)
	engine.writeParagraph("", body)
	engine.writeParagraph("second paragraph", body)

	page := engine.pages[0]
	require.Len(t, page.lines, 2)
	// The blank paragraph consumed a line of vertical space.
	assert.Equal(t, 32.0, page.lines[0].y-page.lines[1].y)
}

func TestLayoutEngine_LongParagraphWraps(t *testing.T) {
	body := style{size: 11, lineHeight: 16}
	engine := newLayoutEngine(fixedWidth, 612, 792, 48)

	words := strings.Repeat("word ", 40)
	engine.writeParagraph(strings.TrimSpace(words), body)

	// Content width 516pt fits 86 characters, i.e. 17 five-character words
	// per line; 40 words need 3 lines.
	require.Len(t, engine.pages, 1)
	assert.Len(t, engine.pages[0].lines, 3)
}
