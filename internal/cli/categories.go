package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkral/interwiki/pkg/catgraph"
	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/family"
)

// fixCategoriesSummary is the edit summary for category fixes unless
// the configuration overrides it.
const fixCategoriesSummary = "fix category placement"

// categoriesCommand creates the categories command with subcommands.
func (c *CLI) categoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Fix category placement and create wanted categories",
	}

	cmd.AddCommand(c.categoriesFixCommand())
	cmd.AddCommand(c.categoriesInitWantedCommand())

	return cmd
}

// categoriesFixCommand creates the "categories fix" subcommand.
func (c *CLI) categoriesFixCommand() *cobra.Command {
	var (
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite category links to match each page's language",
		Long: `Fix rewrites the category links of every translated page so that
each one points at the category of the page's own language. Each edit
is confirmed interactively unless --yes is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !dryRun && c.cfg.Wiki.Username == "" {
				return fmt.Errorf("writing fixes requires credentials, use --dry-run or configure a bot password")
			}

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			_, pages, err := c.newResolver(ctx, client)
			if err != nil {
				return err
			}

			titles := make([]string, 0, len(pages))
			for _, p := range pages {
				if family.IsValidInterlanguage(p.Title) {
					titles = append(titles, p.Title)
				}
			}

			summary := c.cfg.Sync.Summary
			if summary == "" {
				summary = fixCategoriesSummary
			}

			reader := bufio.NewReader(os.Stdin)
			applyAll := yes
			fixed, failed := 0, 0

			const batch = 50
			for start := 0; start < len(titles); start += batch {
				end := min(start+batch, len(titles))
				contents, err := client.FetchPageContent(ctx, titles[start:end])
				if err != nil {
					return err
				}
				for _, content := range contents {
					newText, err := family.FixPageCategories(content.Title, content.Text)
					if err != nil {
						if errors.GetCode(err) == errors.ErrCodeHeaderStructure {
							printError("failed %s: %s", content.Title, err)
							failed++
							continue
						}
						return err
					}
					if newText == content.Text {
						continue
					}
					if dryRun {
						printInfo("Would fix %s", content.Title)
						fixed++
						continue
					}
					if !applyAll {
						switch confirm(reader, fmt.Sprintf("Fix categories of %s?", content.Title)) {
						case answerNo:
							continue
						case answerQuit:
							printInfo("Fixed %d pages", fixed)
							return nil
						case answerAll:
							applyAll = true
						}
					}
					if err := client.EditPage(ctx, content.Title, content.ID, newText, summary, content.Timestamp); err != nil {
						if errors.GetCode(err) == errors.ErrCodeEditConflict {
							printError("failed %s: %s", content.Title, err)
							failed++
							continue
						}
						return err
					}
					fixed++
				}
			}

			if fixed == 0 && failed == 0 {
				printSuccess("All category links match their page language")
				return nil
			}
			printSuccess("Fixed %d pages", fixed)
			if failed > 0 {
				printWarning("%d pages could not be fixed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without editing any page")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply all fixes without asking")

	return cmd
}

// categoriesInitWantedCommand creates the "categories init-wanted" subcommand.
func (c *CLI) categoriesInitWantedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-wanted",
		Short: "Create localized category pages the wiki reports as wanted",
		Long: `Init-wanted creates every localized category the wiki lists as
wanted, deriving its parent categories from the default-language
counterpart. Parents that are themselves missing are created
recursively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if c.cfg.Wiki.Username == "" {
				return fmt.Errorf("creating categories requires credentials, configure a bot password")
			}

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}

			spin := newSpinnerWithContext(ctx, "Building category graph...")
			spin.Start()
			graph := catgraph.New(client, c.Logger)
			if err := graph.Update(ctx); err != nil {
				spin.StopWithError("Category listing failed")
				return err
			}
			spin.Stop()

			report, err := graph.InitWantedCategories(ctx)
			if report != nil {
				if len(report.Created) == 0 {
					printSuccess("No wanted categories to create")
				} else {
					printSuccess("Created %d categories", len(report.Created))
					for _, title := range report.Created {
						printDetail("%s", title)
					}
				}
				for _, title := range report.Skipped {
					printWarning("skipped %s", title)
				}
			}
			return err
		},
	}
}
