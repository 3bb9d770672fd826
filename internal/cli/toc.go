package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jkral/interwiki/pkg/catgraph"
	"github.com/jkral/interwiki/pkg/lang"
	"github.com/jkral/interwiki/pkg/mediawiki"
	"github.com/jkral/interwiki/pkg/toc"
	"github.com/jkral/interwiki/pkg/wikitext"
)

// tocCommand creates the toc rendering command.
func (c *CLI) tocCommand() *cobra.Command {
	var (
		langs     []string
		format    string
		alsoin    string
		output    string
		namesPage string
		noTokens  bool
	)

	cmd := &cobra.Command{
		Use:   "toc",
		Short: "Render localized tables of contents from the category graph",
		Long: `Toc walks the category tree of one language and renders it as an
indented table of contents. With two languages the trees are aligned
side by side, pairing the localized categories with their
default-language counterparts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(langs) == 0 || (len(langs) == 1 && langs[0] == "all") {
				langs = lang.InternalTags()
			}
			if format == "mediawiki" && len(langs) > 2 {
				return fmt.Errorf("cannot align more than 2 languages at once")
			}

			var roots []string
			for _, tag := range langs {
				language, ok := lang.ByTag(tag)
				if !ok || !language.IsInternal() {
					return fmt.Errorf("unknown language tag %q", tag)
				}
				roots = append(roots, "Category:"+language.Name)
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

			translations := toc.AlsoIn{}
			if alsoin != "" {
				translations = toc.ParseAlsoIn(roots[0], alsoin)
			}

			names, err := c.fetchLocalizedNames(ctx, client, namesPage, langs)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			render := func(roots ...string) error {
				var formatter toc.Formatter
				switch format {
				case "plain":
					formatter = toc.NewPlain(graph.Parents(), graph.Infos(), names, translations)
				case "mediawiki":
					formatter = toc.NewMediaWiki(graph.Parents(), graph.Infos(), names, translations, !noTokens)
				default:
					return fmt.Errorf("unknown format %q (want plain or mediawiki)", format)
				}
				if err := toc.Render(formatter, graph.Subcats(), roots...); err != nil {
					return err
				}
				fmt.Fprintf(out, "== %s ==\n\n", strings.Join(roots, " / "))
				fmt.Fprintln(out, formatter.String())
				return nil
			}

			// two languages render as one aligned comparison, more
			// than two render one tree each
			if len(roots) == 2 {
				return render(roots...)
			}
			for _, root := range roots {
				if err := render(root); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&langs, "langs", nil, "language tags to render (default all internal languages)")
	cmd.Flags().StringVarP(&format, "format", "f", "plain", "output format (plain or mediawiki)")
	cmd.Flags().StringVar(&alsoin, "alsoin", "", `translations of the "also in" phrase, e.g. "cs: také v, de: auch in"`)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&namesPage, "names-page", "Table of contents", "wiki page whose catlinks provide localized category names (empty to disable)")
	cmd.Flags().BoolVar(&noTokens, "no-table-tokens", false, "omit the {| |} tokens around mediawiki output")

	return cmd
}

// fetchLocalizedNames reads the existing ToC page of every requested
// language and collects the localized category names written into its
// catlinks. Pages that do not exist contribute nothing.
func (c *CLI) fetchLocalizedNames(ctx context.Context, client *mediawiki.Client, page string, tags []string) (toc.Names, error) {
	names := toc.Names{}
	if page == "" {
		return names, nil
	}

	base, _ := lang.DetectLanguage(wikitext.Canonicalize(page))
	titles := make([]string, 0, len(tags))
	for _, tag := range tags {
		language, ok := lang.ByTag(tag)
		if !ok {
			continue
		}
		title, err := lang.FormatTitle(base, language.Name)
		if err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}

	contents, err := client.FetchPageContent(ctx, titles)
	if err != nil {
		return nil, err
	}
	for _, content := range contents {
		for title, name := range toc.ExtractNames(content.Text) {
			names[title] = name
		}
	}
	return names, nil
}
