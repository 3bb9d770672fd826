package cli

import (
	"github.com/spf13/cobra"
)

// orphansCommand creates the orphans command.
func (c *CLI) orphansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List translated pages with no interlanguage links",
		Long: `Orphans lists pages in a non-default language whose computed
family contains no other member. These are translations whose original
was renamed or deleted, or pages whose title no longer matches any
family.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			resolver, _, err := c.newResolver(ctx, client)
			if err != nil {
				return err
			}

			orphans, err := resolver.FindOrphans()
			if err != nil {
				return err
			}
			if len(orphans) == 0 {
				printSuccess("No orphaned translations found")
				return nil
			}

			printWarning("%d orphaned translations", len(orphans))
			for _, title := range orphans {
				printDetail("%s", title)
			}
			return nil
		},
	}
}
