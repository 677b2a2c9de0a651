// Package pdf assembles the downloadable loan package document: borrower
// snapshot, generated summary and document checklist laid out on fixed-size
// pages.
package pdf

import "strings"

// style describes how a run of text is drawn. Colors are 0-255 RGB.
type style struct {
	bold       bool
	size       float64
	lineHeight float64
	r, g, b    int
}

// line is a positioned, styled line of text. y is the text baseline.
type line struct {
	text  string
	y     float64
	style style
}

type page struct {
	lines []line
}

// widthFunc reports the rendered width of text in the given style. The
// engine itself is pure; the fpdf renderer supplies real font metrics and
// tests supply fakes.
type widthFunc func(text string, s style) float64

// layoutEngine flows styled paragraphs down fixed-size pages. It tracks a
// vertical cursor and starts a new page whenever the next line would not fit
// above the bottom margin.
type layoutEngine struct {
	measure      widthFunc
	pageHeight   float64
	margin       float64
	contentWidth float64

	pages []page
	y     float64
}

func newLayoutEngine(measure widthFunc, pageWidth, pageHeight, margin float64) *layoutEngine {
	engine := &layoutEngine{
		measure:      measure,
		pageHeight:   pageHeight,
		margin:       margin,
		contentWidth: pageWidth - 2*margin,
	}
	engine.newPage()
	return engine
}

func (e *layoutEngine) newPage() {
	e.pages = append(e.pages, page{})
	e.y = e.pageHeight - e.margin
}

func (e *layoutEngine) ensureSpace(height float64) {
	if e.y-height > e.margin {
		return
	}
	e.newPage()
}

// advance moves the cursor down without emitting text, used for the small
// gaps between sections.
func (e *layoutEngine) advance(height float64) {
	e.y -= height
}

// writeParagraph word-wraps text and emits the resulting lines. A blank
// paragraph is preserved as one empty line of vertical space.
func (e *layoutEngine) writeParagraph(text string, s style) {
	wrapped := wrap(text, s, e.contentWidth, e.measure)
	for _, wrappedLine := range wrapped {
		e.ensureSpace(s.lineHeight)
		current := &e.pages[len(e.pages)-1]
		if wrappedLine != "" {
			current.lines = append(current.lines, line{text: wrappedLine, y: e.y, style: s})
		}
		e.y -= s.lineHeight
	}
}

// wrap splits text on whitespace and greedily accumulates words into lines
// within maxWidth. A single word wider than maxWidth is placed alone on its
// own line, never split mid-word. Blank text yields one empty line.
func wrap(text string, s style, maxWidth float64, measure widthFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if measure(candidate, s) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = word
			continue
		}

		// The word alone overflows the content width.
		lines = append(lines, word)
	}
	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
