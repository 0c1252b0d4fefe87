package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/jung-kurt/gofpdf"

	"reportgen/internal/errors"
)

const (
	pageWidth  = 8.5 // inches, Letter
	pageHeight = 11.0
	marginX    = 0.5
	marginY    = 1.0
	leading    = 0.2
	maxCols    = 80 // characters per PDF line
)

// Writer writes composed reports to the export directory. Each call
// produces a new uniquely-timestamped file; nothing is ever overwritten.
type Writer struct {
	exportDir string
}

// NewWriter creates an export writer rooted at exportDir
func NewWriter(exportDir string) *Writer {
	return &Writer{exportDir: exportDir}
}

// outputPath builds a collision-free export path from the requested base
// name and the current time.
func (w *Writer) outputPath(filename, ext string) string {
	base := filepath.Base(filename)
	if base == "" || base == "." {
		base = "Report"
	}
	return filepath.Join(w.exportDir, fmt.Sprintf("%s_%d.%s", base, time.Now().UnixNano(), ext))
}

// WriteTxt writes the report as UTF-8 plain text, byte-for-byte identical
// to the composed string.
func (w *Writer) WriteTxt(report, filename string) (string, error) {
	path := w.outputPath(filename, "txt")
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", errors.ExportError("TXT export failed", err)
	}
	return path, nil
}

// WritePDF renders the report as a line-wrapped PDF: one text line per
// report line, truncated to 80 characters, with a page break when the
// bottom margin is reached.
func (w *Writer) WritePDF(report, filename string) (string, error) {
	path := w.outputPath(filename, "pdf")

	pdf := gofpdf.New("P", "in", "Letter", "")
	pdf.SetFont("Courier", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	y := marginY
	for _, line := range strings.Split(report, "\n") {
		if y > pageHeight-marginY {
			pdf.AddPage()
			y = marginY
		}
		runes := []rune(line)
		if len(runes) > maxCols {
			runes = runes[:maxCols]
		}
		pdf.Text(marginX, y, tr(string(runes)))
		y += leading
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", errors.ExportError("PDF export failed", err)
	}
	return path, nil
}

// WriteHTML renders the report inside a fenced code block so the fixed-width
// layout survives, then converts it with the markdown renderer.
func (w *Writer) WriteHTML(report, filename string) (string, error) {
	path := w.outputPath(filename, "html")

	md := "```text\n" + report + "\n```\n"
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	out := markdown.ToHTML([]byte(md), p, renderer)

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", errors.ExportError("HTML export failed", err)
	}
	return path, nil
}
