package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer provides methods for formatted console output
type Printer struct {
	writer io.Writer
	styles *Styles
}

// Styles holds lipgloss styles for console output
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Header  lipgloss.Style
	Subtle  lipgloss.Style
	Bold    lipgloss.Style
}

// NewPrinter creates a new console printer
func NewPrinter(writer io.Writer) *Printer {
	return &Printer{
		writer: writer,
		styles: &Styles{
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
			Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true).Underline(true),
			Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Bold:    lipgloss.NewStyle().Bold(true),
		},
	}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Success.Render("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Warning.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// Info prints an info message
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Info.Render("ℹ "+fmt.Sprintf(format, args...)))
}

// Header prints a header message
func (p *Printer) Header(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Header.Render(fmt.Sprintf(format, args...)))
}

// Println prints a normal message
func (p *Printer) Println(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, fmt.Sprintf(format, args...))
}

// Subtle prints a subtle/dimmed message
func (p *Printer) Subtle(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, p.styles.Subtle.Render(fmt.Sprintf(format, args...)))
}

// Blank prints an empty line
func (p *Printer) Blank() {
	fmt.Fprintln(p.writer)
}

// Table prints a simple table sized by display width
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	headerParts := make([]string, len(headers))
	for i, h := range headers {
		headerParts[i] = p.styles.Bold.Render(padRight(h, widths[i]))
	}
	fmt.Fprintln(p.writer, strings.Join(headerParts, "  "))

	separatorParts := make([]string, len(headers))
	for i, w := range widths {
		separatorParts[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(p.writer, p.styles.Subtle.Render(strings.Join(separatorParts, "  ")))

	for _, row := range rows {
		rowParts := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rowParts[i] = padRight(cell, widths[i])
		}
		fmt.Fprintln(p.writer, strings.TrimRight(strings.Join(rowParts, "  "), " "))
	}
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
