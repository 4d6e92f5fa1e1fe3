package commands

import (
	"fmt"

	"github.com/greeddj/mailbox-report-go/internal/config"
	"github.com/greeddj/mailbox-report-go/internal/exchange"
	"github.com/greeddj/mailbox-report-go/internal/report"
	"github.com/greeddj/mailbox-report-go/internal/stdout"
	"github.com/urfave/cli/v2"
)

// Show fetches and classifies the tenant's mailbox inventory and prints it to
// the console without producing a report file.
func Show(cCtx *cli.Context) error {
	ctx := cCtx.Context
	verbose := cCtx.Bool("verbose")

	cfg, err := config.New(cCtx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("load config: %v", err), exitConfig)
	}

	spin := stdout.New(false, verbose)

	spin.Update(fmt.Sprintf("[%s] Connecting...", cfg.Organization))
	session, err := exchange.Connect(ctx, cfg.Organization, exchange.Credentials{
		TenantID:     cfg.Auth.TenantID,
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
	}, cfg.Endpoint)
	if err != nil {
		spin.Error(fmt.Sprintf("connect to %s failed", cfg.Organization))
		return cli.Exit(fmt.Sprintf("connect to %s: %v", cfg.Organization, err), exitConfig)
	}
	defer session.Logout()

	spin.Update(fmt.Sprintf("[%s] Fetching hosted mailboxes...", cfg.Organization))
	hosted, err := session.FetchHostedMailboxes(ctx)
	if err != nil {
		spin.Error("fetching hosted mailboxes failed")
		return cli.Exit(fmt.Sprintf("fetch hosted mailboxes: %v", err), exitFetch)
	}

	spin.Update(fmt.Sprintf("[%s] Fetching remote mailboxes...", cfg.Organization))
	remote, err := session.FetchRemoteMailboxes(ctx)
	if err != nil {
		spin.Notice(fmt.Sprintf("notice: remote mailboxes unavailable, continuing without them: %v", err))
		remote = nil
	}

	records, summary := report.Normalize(hosted, remote)
	spin.Success(fmt.Sprintf("[%s] %d mailboxes classified", cfg.Organization, summary.Total))

	printInventory(report.SortedByDisplayName(records))
	fmt.Println()
	printSummary(summary)

	return nil
}
