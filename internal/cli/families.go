package cli

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// familiesCommand creates the families command.
func (c *CLI) familiesCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "families",
		Short: "Inspect the family grouping of all pages",
		Long: `Families groups every page into its translation family and prints a
summary. With --interactive, families can be browsed in a terminal UI:
select a family to see its member pages and their current link counts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			resolver, pages, err := c.newResolver(ctx, client)
			if err != nil {
				return err
			}

			families := resolver.Families()
			keys := make([]string, 0, len(families))
			for key := range families {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			rows := make([]FamilyRow, 0, len(keys))
			withoutHub := 0
			for _, key := range keys {
				row := FamilyRow{Key: key, Members: families[key]}
				if !row.hasHub() {
					withoutHub++
				}
				rows = append(rows, row)
			}

			if !interactive {
				printStats(len(pages), len(families), false)
				if withoutHub > 0 {
					printWarning("%d families have no page in the default language", withoutHub)
				}
				printNextStep("Browse families interactively", "interwiki families --interactive")
				return nil
			}

			m := NewFamilyListModel(rows)
			p := tea.NewProgram(m)
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := finalModel.(FamilyListModel)
			if !ok || fm.Selected == nil {
				printDetail("No selection made")
				return nil
			}

			mm := NewMemberListModel(*fm.Selected)
			mp := tea.NewProgram(mm)
			mfinalModel, err := mp.Run()
			if err != nil {
				return err
			}

			mfm, ok := mfinalModel.(MemberListModel)
			if ok && mfm.Selected != nil {
				links, err := resolver.GetLangLinks(mfm.Selected.Title)
				if err != nil {
					return err
				}
				printInfo("Computed links for %s", mfm.Selected.Title)
				for _, ll := range links {
					printDetail("[[%s:%s]]", ll.Tag, ll.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse families in a terminal UI")

	return cmd
}
