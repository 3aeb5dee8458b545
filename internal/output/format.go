// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"tasktrack/internal/i18n"
	"tasktrack/internal/service"
	"tasktrack/internal/store"
	"tasktrack/internal/validate"
)

const (
	// ListSeparator is the separator line for status sections.
	ListSeparator = "------------"

	// DateLayout is how due dates are shown and parsed.
	DateLayout = "2006-01-02"
)

// FormatTask formats a dashboard task line.
// Format: "{N:>4}  {TITLE} [{PRIORITY}]" plus " due {DATE}" when set.
func FormatTask(w io.Writer, num int, task service.Task) {
	title := normalizeTitle(task.Title)
	line := fmt.Sprintf("%4d  %s [%s]", num, title, task.Priority)
	if task.DueDate != nil {
		line += " due " + task.DueDate.Format(DateLayout)
	}
	fmt.Fprintln(w, line)
}

// FormatStatusHeader formats a status section header.
func FormatStatusHeader(w io.Writer, status service.Status, count int) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d)\n", status, count)
	fmt.Fprintln(w, ListSeparator)
}

// FormatStats formats the dashboard counters.
func FormatStats(w io.Writer, s store.Stats) {
	fmt.Fprintf(w, "total %d  pending %d  in progress %d  completed %d  archived %d\n",
		s.Total, s.Pending, s.InProgress, s.Completed, s.Archived)
}

// FormatTaskDetail formats every field of a single task.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
	fmt.Fprintf(w, "status:      %s\n", task.Status)
	fmt.Fprintf(w, "priority:    %s\n", task.Priority)
	if task.DueDate != nil {
		fmt.Fprintf(w, "due:         %s\n", task.DueDate.Format(DateLayout))
	}
}

// FormatUser formats the signed-in user.
func FormatUser(w io.Writer, user service.User) {
	fmt.Fprintf(w, "%s <%s>\n", user.Name, user.Email)
}

// FormatStrength formats the password strength meter.
// Format: "{LABEL} ({SCORE}/4)"
func FormatStrength(w io.Writer, tr *i18n.Translator, s validate.Strength) {
	fmt.Fprintf(w, "%s (%d/4)\n", tr.T(s.Label), s.Score)
}

// FormatChecklist formats the password rules, marking satisfied ones.
func FormatChecklist(w io.Writer, tr *i18n.Translator, c validate.Checklist) {
	rules := []struct {
		ok   bool
		hint string
	}{
		{c.Length, i18n.HintLength},
		{c.Upper, i18n.HintUpper},
		{c.Symbol, i18n.HintSymbol},
		{c.Digit, i18n.HintDigit},
	}
	for _, r := range rules {
		mark := " "
		if r.ok {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %s\n", mark, tr.T(r.hint))
	}
}

// FormatFieldErrors prints field errors sorted by field name, then the
// form-level message when set.
func FormatFieldErrors(w io.Writer, errs validate.FieldErrors, formErr string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	shown := false
	for _, field := range fields {
		fmt.Fprintf(w, "error: %s: %s\n", field, errs[field])
		shown = shown || errs[field] == formErr
	}
	if formErr != "" && !shown {
		fmt.Fprintf(w, "error: %s\n", formErr)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
