package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"
	"time"
)

const (
	// headerTimeLayout formats the generation timestamp in the report header.
	headerTimeLayout = "2006-01-02 15:04:05"
	// createdLayout formats the Created Date column.
	createdLayout = "2006-01-02"
	// logonLayout formats the Last Logon column.
	logonLayout = "2006-01-02 15:04"
	// fileNameLayout formats the timestamp embedded in the output file name.
	fileNameLayout = "20060102_150405"

	// noCreated is rendered when a record has no creation timestamp.
	noCreated = "Unknown"
	// noLogon is rendered when a record has no last-logon timestamp.
	noLogon = "Never"
	// filterAll is the filter button that shows every row.
	filterAll = "All"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

// row is one pre-formatted table row handed to the template. Escaping of the
// free-text fields happens in the template engine, not here.
type row struct {
	Class       string
	DisplayName string
	Address     string
	TypeDetail  string
	Location    string
	Database    string
	ServerName  string
	Created     string
	LastLogon   string
}

// summaryEntry is one line of the report's summary block.
type summaryEntry struct {
	Label string
	Count int
}

// templateData is the complete input to the report template.
type templateData struct {
	GeneratedAt string
	ReportID    string
	Summary     []summaryEntry
	Total       int
	Filters     []string
	Rows        []row
}

// Render serializes the normalized collection into a single self-contained
// HTML document: inline styles, inline filter script, no external resources.
// Rows are sorted by display name with a stable sort, so records sharing a
// name keep their input order. Deterministic for fixed inputs.
func Render(records []MailboxRecord, summary Summary, generatedAt time.Time, reportID string) (string, error) {
	sorted := SortedByDisplayName(records)

	data := templateData{
		GeneratedAt: generatedAt.Format(headerTimeLayout),
		ReportID:    reportID,
		Total:       summary.Total,
		Filters:     append([]string{filterAll}, summary.Labels()...),
	}

	for _, label := range summary.Labels() {
		data.Summary = append(data.Summary, summaryEntry{Label: label, Count: summary.Counts[label]})
	}

	for _, r := range sorted {
		data.Rows = append(data.Rows, row{
			Class:       r.Location.CSSClass(),
			DisplayName: r.DisplayName,
			Address:     r.PrimaryAddress,
			TypeDetail:  r.TypeDetail,
			Location:    r.Location.Label(),
			Database:    r.Database,
			ServerName:  r.ServerName,
			Created:     formatTime(r.CreatedAt, createdLayout, noCreated),
			LastLogon:   formatTime(r.LastLogonAt, logonLayout, noLogon),
		})
	}

	var buf strings.Builder
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return buf.String(), nil
}

// SortedByDisplayName returns a stably sorted copy of records in display
// order. Records sharing a display name keep their relative input order.
func SortedByDisplayName(records []MailboxRecord) []MailboxRecord {
	sorted := make([]MailboxRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayName < sorted[j].DisplayName
	})
	return sorted
}

// formatTime formats an optional timestamp, falling back to a fixed literal.
func formatTime(t *time.Time, layout, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format(layout)
}

// FileName derives the report file name from the run's start time.
func FileName(start time.Time) string {
	return fmt.Sprintf("MailboxLocationReport_%s.html", start.Format(fileNameLayout))
}

// WriteFile persists the rendered document, UTF-8 encoded, at path.
func WriteFile(path, html string) error {
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
