package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkral/interwiki/pkg/catgraph"
)

// graphCommand creates the graph export command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		root     string
		format   string
		output   string
		counters bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the category graph as DOT or SVG",
		Long: `Graph builds the wiki's category graph and renders it. With --root
only the categories reachable from that root are included; localized
categories are visually distinguished from default-language ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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
			printStats(len(graph.Titles()), 0, !c.refresh)

			dot := graph.ToDOT(catgraph.DOTOptions{Root: root, Counters: counters})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = catgraph.RenderSVG(ctx, dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered category graph")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "restrict output to categories reachable from this root")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format (dot or svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&counters, "counters", false, "include page counters in node labels")

	return cmd
}
