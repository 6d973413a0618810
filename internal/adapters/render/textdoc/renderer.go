// Package textdoc renders assembled reports as paginated plain-text
// documents and record sets as CSV. All figures come from the report
// assembler; the renderer only lays them out.
package textdoc

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ordenate/backend/internal/core/domain"
	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
)

const (
	pageWidth = 78
	pageLines = 56
)

// Renderer implements the document renderer port over plain text.
type Renderer struct{}

// NewRenderer creates the plain-text renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Ensure Renderer implements the renderer port
var _ portsrepo.DocumentRenderer = (*Renderer)(nil)

// RenderDocument lays the report out page by page, with a centered header
// on the first page and a "Página i de n" footer on every page.
func (r *Renderer) RenderDocument(ctx context.Context, report domain.Report) ([]byte, error) {
	var lines []string
	lines = append(lines, center(report.Title))
	lines = append(lines, center(report.Subtitle))
	if report.Period != "" {
		lines = append(lines, center(report.Period))
	}
	lines = append(lines, strings.Repeat("=", pageWidth), "")

	for _, section := range report.Sections {
		lines = append(lines, section.Heading, strings.Repeat("-", len([]rune(section.Heading))))
		for _, paragraph := range section.Paragraphs {
			lines = append(lines, wrap(paragraph, pageWidth)...)
			lines = append(lines, "")
		}
		if section.Table != nil {
			lines = append(lines, tableLines(section.Table)...)
			lines = append(lines, "")
		}
		for _, point := range section.Chart {
			bar := strings.Repeat("#", point.Percent/2)
			lines = append(lines, fmt.Sprintf("%-20s %3d (%d%%) %s", point.Label, point.Value, point.Percent, bar))
		}
		if len(section.Chart) > 0 {
			lines = append(lines, "")
		}
	}

	return paginate(lines), nil
}

// RenderTable writes a CSV export of the given header and rows.
func (r *Renderer) RenderTable(ctx context.Context, headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func paginate(lines []string) []byte {
	pages := (len(lines) + pageLines - 1) / pageLines
	if pages == 0 {
		pages = 1
	}
	var buf bytes.Buffer
	for page := 0; page < pages; page++ {
		start := page * pageLines
		end := min(start+pageLines, len(lines))
		for _, line := range lines[start:end] {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		buf.WriteString(center(fmt.Sprintf("Página %d de %d", page+1, pages)))
		buf.WriteByte('\n')
		if page < pages-1 {
			buf.WriteByte('\f')
		}
	}
	return buf.Bytes()
}

func center(text string) string {
	width := len([]rune(text))
	if width >= pageWidth {
		return text
	}
	return strings.Repeat(" ", (pageWidth-width)/2) + text
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var out []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			out = append(out, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(out, line)
}

func tableLines(table *domain.ReportTable) []string {
	widths := make([]int, len(table.Headers))
	for i, h := range table.Headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	format := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
			} else {
				parts[i] = cell
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	lines := []string{format(table.Headers)}
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	lines = append(lines, strings.Repeat("-", total-2))
	for _, row := range table.Rows {
		lines = append(lines, format(row))
	}
	return lines
}
