package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jkral/interwiki/pkg/family"
)

// errQuit stops an interactive run without failing it.
var errQuit = errors.New("quit")

// updateCommand creates the update command.
func (c *CLI) updateCommand() *cobra.Command {
	var dryRun bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Recompute and write interlanguage links for all pages",
		Long: `Update groups all pages into language families, computes the
authoritative set of interlanguage links for every page, and edits the
pages whose recorded links differ. Pages carrying __NOTOC__ or
__NOEDITSECTION__ are skipped; pages with a malformed header are
reported and left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !dryRun && c.cfg.Wiki.Username == "" {
				return fmt.Errorf("writing links requires credentials, use --dry-run or configure a bot password")
			}

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}

			resolver, pages, err := c.newResolver(ctx, client)
			if err != nil {
				return err
			}
			printStats(len(pages), len(resolver.Families()), !c.refresh)

			prog := newProgress(c.Logger)
			updater := family.NewUpdater(resolver, client, dryRun)
			updater.Summary = c.cfg.Sync.Summary
			if interactive && !dryRun {
				updater.Confirm = confirmEdits(cmd)
			}
			report, err := updater.UpdateAll(ctx)
			if report != nil {
				printReport(report, dryRun)
			}
			if errors.Is(err, errQuit) {
				printInfo("Stopped on request, remaining pages untouched")
				err = nil
			}
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Processed %d pages", len(pages)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute changes without editing any page")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "confirm every edit before it is written")

	return cmd
}

// confirmEdits asks about each pending edit on the command's stdin.
func confirmEdits(cmd *cobra.Command) func(string) (bool, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	all := false
	return func(title string) (bool, error) {
		if all {
			return true, nil
		}
		switch confirm(reader, fmt.Sprintf("Edit %s?", title)) {
		case answerYes:
			return true, nil
		case answerAll:
			all = true
			return true, nil
		case answerNo:
			return false, nil
		default:
			return false, errQuit
		}
	}
}

// printReport renders an updater report.
func printReport(report *family.Report, dryRun bool) {
	verb := "Updated"
	if dryRun {
		verb = "Would update"
	}

	printKeyValue("run", report.RunID)
	if len(report.Updated) > 0 {
		printSuccess("%s %d pages", verb, len(report.Updated))
		for _, title := range report.Updated {
			printDetail("%s", title)
		}
	} else {
		printInfo("All interlanguage links are up to date")
	}

	for _, skip := range report.Skipped {
		printWarning("skipped %s: %s", skip.Title, skip.Reason)
	}
	for _, fail := range report.Failed {
		printError("failed %s: %s", fail.Title, fail.Reason)
	}

	if dryRun && len(report.Updated) > 0 {
		printNextStep("Apply the changes", "interwiki update")
	}
}
