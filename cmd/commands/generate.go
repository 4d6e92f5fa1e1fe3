// Package commands implements CLI subcommands for mailbox-report-go.
package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/greeddj/mailbox-report-go/internal/config"
	"github.com/greeddj/mailbox-report-go/internal/exchange"
	"github.com/greeddj/mailbox-report-go/internal/progress"
	"github.com/greeddj/mailbox-report-go/internal/report"
	"github.com/greeddj/mailbox-report-go/internal/utils"
	"github.com/urfave/cli/v2"
)

const (
	// exitConfig covers configuration and connection failures.
	exitConfig = 1
	// exitFetch covers a failed primary (hosted) fetch.
	exitFetch = 2
	// exitWrite covers render and file-write failures.
	exitWrite = 3
	// pipelineStages is the number of progress trackers shown during a run.
	pipelineStages = 3
)

// Generate runs the full pipeline: fetch both mailbox sets, normalize and
// merge them, render the HTML report, and write it to the output directory.
func Generate(cCtx *cli.Context) error {
	ctx := cCtx.Context
	quiet := cCtx.Bool("quiet")
	start := time.Now()
	reportID := uuid.NewString()

	cfg, err := config.New(cCtx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), exitConfig)
	}

	outputDir := cCtx.String("output-dir")
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	outputDir, err = utils.ResolveOutputDir(outputDir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("resolve output directory: %v", err), exitConfig)
	}

	pw := progress.NewWriter(pipelineStages, quiet)
	pw.Start()

	hostedTracker := progress.NewTracker("Hosted mailboxes", 1)
	remoteTracker := progress.NewTracker("Remote mailboxes", 1)
	reportTracker := progress.NewTracker("Report", 1)
	pw.AppendTracker(hostedTracker)
	pw.AppendTracker(remoteTracker)
	pw.AppendTracker(reportTracker)

	hostedTracker.UpdateMessage(fmt.Sprintf("[%s] Connecting...", cfg.Organization))
	session, err := exchange.Connect(ctx, cfg.Organization, exchange.Credentials{
		TenantID:     cfg.Auth.TenantID,
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
	}, cfg.Endpoint)
	if err != nil {
		hostedTracker.MarkAsErrored()
		pw.StopAndClear(pipelineStages)
		return cli.Exit(fmt.Sprintf("connect to %s: %v", cfg.Organization, err), exitConfig)
	}
	// Session release is unconditional from here on, whatever the exit path.
	defer session.Logout()

	hostedTracker.UpdateMessage(fmt.Sprintf("[%s] Fetching hosted mailboxes...", cfg.Organization))
	hosted, err := session.FetchHostedMailboxes(ctx)
	if err != nil {
		hostedTracker.MarkAsErrored()
		pw.StopAndClear(pipelineStages)
		return cli.Exit(fmt.Sprintf("fetch hosted mailboxes: %v", err), exitFetch)
	}
	hostedTracker.MarkAsDone()

	// A remote-mailbox failure is a degraded run, not a failed one: tenants
	// without a hybrid setup cannot answer this query at all.
	remoteTracker.UpdateMessage(fmt.Sprintf("[%s] Fetching remote mailboxes...", cfg.Organization))
	remote, err := session.FetchRemoteMailboxes(ctx)
	if err != nil {
		pw.Log("notice: remote mailboxes unavailable, continuing without them: %v", err)
		remote = nil
	}
	remoteTracker.MarkAsDone()

	records, summary := report.Normalize(hosted, remote)

	reportTracker.UpdateMessage("Rendering report...")
	html, err := report.Render(records, summary, start, reportID)
	if err != nil {
		reportTracker.MarkAsErrored()
		pw.StopAndClear(pipelineStages)
		return cli.Exit(fmt.Sprintf("render report: %v", err), exitWrite)
	}

	outputPath := filepath.Join(outputDir, report.FileName(start))
	reportTracker.UpdateMessage("Writing report...")
	if err := report.WriteFile(outputPath, html); err != nil {
		reportTracker.MarkAsErrored()
		pw.StopAndClear(pipelineStages)
		return cli.Exit(fmt.Sprintf("write report: %v", err), exitWrite)
	}
	reportTracker.MarkAsDone()

	pw.StopAndClear(pipelineStages)

	if !quiet {
		printSummary(summary)
		fmt.Println()
		fmt.Printf("Report %s written to %s\n", reportID, outputPath)
	}

	return nil
}
