package commands

import (
	"os"

	"github.com/greeddj/mailbox-report-go/internal/report"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// printSummary displays per-location counts and the grand total.
func printSummary(summary report.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false

	t.AppendHeader(table.Row{"Location", "Mailboxes"})

	for _, label := range summary.Labels() {
		t.AppendRow(table.Row{label, summary.Counts[label]})
	}

	t.AppendFooter(table.Row{
		text.Bold.Sprint("total"),
		text.Bold.Sprintf("%d", summary.Total),
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	t.Render()
}

// printInventory displays the full normalized mailbox collection in display
// order, mirroring the report's table columns.
func printInventory(records []report.MailboxRecord) {
	if len(records) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false

	t.AppendHeader(table.Row{"Display Name", "Email Address", "Type", "Location", "Database", "Server"})

	for _, r := range records {
		t.AppendRow(table.Row{
			r.DisplayName,
			r.PrimaryAddress,
			r.TypeDetail,
			r.Location.Label(),
			r.Database,
			r.ServerName,
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
	})

	t.Render()
}
