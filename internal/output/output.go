// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/AndreyAkinshin/verifyhelper/internal/result"
	"github.com/AndreyAkinshin/verifyhelper/internal/status"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a Writer on stdout and stderr, colored when stdout is a terminal.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%swarning:%s %s", yellow, reset, msg)
	} else {
		w.Errorln("warning: %s", msg)
	}
}

// ErrorPrefix prints an error message with the program prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%sverify-helper:%s %s", red, reset, msg)
	} else {
		w.Errorln("verify-helper: %s", msg)
	}
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, 0, len(widths))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	w.Println("%s", line(headers))
	seps := make([]string, len(widths))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	w.Println("%s", line(seps))
	for _, row := range rows {
		w.Println("%s", line(row))
	}
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s", dim, label, reset, value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// summaryColored prints a summary item whose value is colored when color is on.
func (w *Writer) summaryColored(label, value, color string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, color, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.final(green, format, args...)
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.final(red, format, args...)
}

func (w *Writer) final(color, format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", color, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// StatusReport prints one row per file followed by the count of each status.
func (w *Writer) StatusReport(r *status.Report) {
	rows := make([][]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		mark := "+"
		if !e.Status.IsSuccess() {
			mark = "x"
		}
		rows = append(rows, []string{mark, e.Path, string(e.Status), strings.Join(e.VerifiedWith, ", ")})
	}
	w.Table([]string{"", "FILE", "STATUS", "VERIFIED WITH"}, rows)

	w.Section("Summary")
	for _, s := range status.All {
		n := r.Counts[s]
		if n == 0 {
			continue
		}
		color := green
		if !s.IsSuccess() {
			color = red
		}
		w.summaryColored(s.Label(), fmt.Sprint(n), color)
	}
	if r.IsSuccess() {
		w.FinalSuccess("All %d files passed", len(r.Entries))
	} else {
		w.FinalFailure("%d of %d files failed", len(r.Failed()), len(r.Entries))
	}
}

// RunSummary prints the outcome of the files verified in one pass.
func (w *Writer) RunSummary(res *result.VerifyCommandResult) {
	if w.quiet {
		return
	}
	paths := make([]string, 0, len(res.Files))
	for p := range res.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var succeeded, failed, skipped int
	for _, p := range paths {
		fr := res.Files[p]
		switch {
		case fr.HasStatus(result.Failure):
			failed++
			w.fileLine(red, "x", p, fr.Elapsed())
		case fr.HasStatus(result.Skipped):
			skipped++
			w.fileLine(yellow, "-", p, fr.Elapsed())
		default:
			succeeded++
			w.fileLine(green, "+", p, fr.Elapsed())
		}
	}

	w.Section("Verification summary")
	w.SummaryItem("Verified", fmt.Sprint(len(paths)))
	w.summaryColored("Succeeded", fmt.Sprint(succeeded), green)
	if failed > 0 {
		w.summaryColored("Failed", fmt.Sprint(failed), red)
	}
	if skipped > 0 {
		w.summaryColored("Skipped", fmt.Sprint(skipped), yellow)
	}
	w.SummaryItem("Total time", fmt.Sprintf("%.2fs", res.TotalSeconds))
}

func (w *Writer) fileLine(color, mark, path string, elapsed float64) {
	if w.color {
		w.Println("    %s%s%s %s %s(%.2fs)%s", color, mark, reset, path, dim, elapsed, reset)
	} else {
		w.Println("    %s %s (%.2fs)", mark, path, elapsed)
	}
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
