package pdf

import (
	"bytes"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/lendfolio/lendfolio/internal/errors"
	"github.com/lendfolio/lendfolio/internal/intake"
)

// ErrNoSummary is returned when a document is requested before a summary
// exists.
var ErrNoSummary = errors.NewSentinel("generate a package summary before downloading the PDF")

// US Letter in points with the layout constants of the package document.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	pageMargin = 48.0

	bodySize       = 11.0
	bodyLineHeight = 16.0
)

var (
	titleStyle   = style{bold: true, size: 18, lineHeight: 24, r: 15, g: 115, b: 71}
	metaStyle    = style{size: 10, lineHeight: 16, r: 102, g: 102, b: 102}
	headingStyle = style{bold: true, size: 13, lineHeight: 20, r: 31, g: 31, b: 31}
	bodyStyle    = style{size: bodySize, lineHeight: bodyLineHeight, r: 31, g: 31, b: 31}
)

const sectionGap = 8.0

// Assembler renders the package document. Output is deterministic for
// identical inputs apart from the generation timestamp taken from now.
type Assembler struct {
	questions *intake.QuestionSet
	now       func() time.Time
}

func NewAssembler(questions *intake.QuestionSet, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{questions: questions, now: now}
}

// Build lays out and renders the package document: title, timestamp,
// borrower snapshot in flow order, the generated summary with paragraph
// breaks preserved, and the document checklist.
func (a *Assembler) Build(answers intake.Answers, summary string, checklist []string) ([]byte, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, errors.Wrap(ErrNoSummary, "assemble package document")
	}

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCreationDate(a.now())
	doc.SetAutoPageBreak(false, 0)

	measure := func(text string, s style) float64 {
		setFont(doc, s)
		return doc.GetStringWidth(text)
	}

	engine := newLayoutEngine(measure, pageWidth, pageHeight, pageMargin)
	a.layoutSections(engine, answers, summary, checklist)

	for _, p := range engine.pages {
		doc.AddPage()
		for _, l := range p.lines {
			setFont(doc, l.style)
			doc.SetTextColor(l.style.r, l.style.g, l.style.b)
			doc.Text(pageMargin, l.y, l.text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render package document")
	}
	return buf.Bytes(), nil
}

func (a *Assembler) layoutSections(engine *layoutEngine, answers intake.Answers, summary string, checklist []string) {
	engine.writeParagraph("Commercial Loan Package Summary", titleStyle)
	engine.writeParagraph("Generated: "+a.now().Format("Jan 2, 2006 15:04 MST"), metaStyle)
	engine.advance(sectionGap)

	engine.writeParagraph("Borrower Snapshot", headingStyle)
	for _, answerLine := range intake.FormatAnswerLines(a.questions, answers) {
		engine.writeParagraph(answerLine, bodyStyle)
	}

	engine.advance(sectionGap)
	engine.writeParagraph("AI Loan Summary", headingStyle)
	for _, paragraph := range strings.Split(summary, "\n") {
		engine.writeParagraph(strings.TrimSpace(paragraph), bodyStyle)
	}

	engine.advance(sectionGap)
	engine.writeParagraph("Document Checklist", headingStyle)
	for _, item := range checklist {
		engine.writeParagraph("- "+item, bodyStyle)
	}
}

func setFont(doc *fpdf.Fpdf, s style) {
	fontStyle := ""
	if s.bold {
		fontStyle = "B"
	}
	doc.SetFont("Helvetica", fontStyle, s.size)
}
