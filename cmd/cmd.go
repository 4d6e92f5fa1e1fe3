// Package cmd wires CLI configuration and subcommands.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/greeddj/mailbox-report-go/cmd/commands"

	"github.com/urfave/cli/v2"
)

var (
	// gitRef stores the version tag from build-time injection.
	gitRef = "v0.0.0-dev"
	// gitCommit stores the git commit hash from build-time injection.
	gitCommit = "0000000"
	// appName is the application name.
	appName = "mailbox-report-go"
)

// Run configures and executes the mailbox-report-go CLI application.
func Run() error {
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Println(cCtx.App.Version)
	}
	app := &cli.App{
		Name:                   appName,
		Suggest:                false,
		Usage:                  "Exchange Online mailbox location report generator",
		UseShortOptionHandling: true,
		Version:                fmt.Sprintf("%s (%s) // %s", gitRef, gitCommit, runtime.Version()),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "path to configuration file (JSON or YAML)",
				EnvVars: []string{"MBXREPORT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "generate the HTML mailbox location report",
				Action: commands.Generate,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "directory the report file is written to (default: current directory)",
						EnvVars: []string{"MBXREPORT_OUTPUT_DIR"},
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Value:   false,
						EnvVars: []string{"MBXREPORT_QUIET"},
					},
				},
			},
			{
				Name:   "show",
				Usage:  "show mailbox inventory and location summary in the console",
				Action: commands.Show,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"V"},
						Value:   false,
						EnvVars: []string{"MBXREPORT_VERBOSE"},
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	return nil
}
