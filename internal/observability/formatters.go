// Package observability provides formatted output utilities for the CLI's pretty mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for pretty mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a human-readable overview of the document.
func (p *Printer) PrintResume(doc types.ResumeData) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Email))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", doc.Phone))
	sb.WriteString(fmt.Sprintf("Website:  %s\n", doc.Website))

	if skills := types.SkillList(doc.Skills); len(skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(skills, ", ")))
	}
	if doc.Summary != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", doc.Summary))
	}
	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))

	if len(doc.Experience) > 0 {
		sb.Reset()
		for i, e := range doc.Experience {
			sb.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", e.Title, e.Company, e.StartDate, e.EndDate))
			sb.WriteString(fmt.Sprintf("  id: %s\n", e.ID))

			bullets := types.Bullets(e.Description)
			count := min(len(bullets), maxItemsToShow)
			for _, b := range bullets[:count] {
				sb.WriteString(fmt.Sprintf("  • %s\n", b))
			}
			if len(bullets) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(bullets)-maxItemsToShow))
			}
			if i < len(doc.Experience)-1 {
				sb.WriteString("\n")
			}
		}
		p.printBox(fmt.Sprintf("EXPERIENCE (%d)", len(doc.Experience)), strings.TrimSuffix(sb.String(), "\n"))
	}

	if len(doc.Education) > 0 {
		sb.Reset()
		for _, e := range doc.Education {
			sb.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", e.Degree, e.University, e.StartDate, e.EndDate))
			sb.WriteString(fmt.Sprintf("  id: %s\n", e.ID))
		}
		p.printBox(fmt.Sprintf("EDUCATION (%d)", len(doc.Education)), strings.TrimSuffix(sb.String(), "\n"))
	}

	if len(doc.Projects) > 0 {
		sb.Reset()
		for _, pr := range doc.Projects {
			sb.WriteString(fmt.Sprintf("%s  %s\n", pr.Name, pr.URL))
			sb.WriteString(fmt.Sprintf("  id: %s\n", pr.ID))
		}
		p.printBox(fmt.Sprintf("PROJECTS (%d)", len(doc.Projects)), strings.TrimSuffix(sb.String(), "\n"))
	}
}

// PrintKeywords outputs the keywords missing from the resume.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintKeywords(keywords []string) {
	if len(keywords) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO MISSING KEYWORDS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d missing keywords:\n\n", len(keywords)))
	for _, k := range keywords {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", k))
	}
	p.printBox("MISSING KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}
