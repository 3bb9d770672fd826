package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jkral/interwiki/pkg/catgraph"
	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/family"
	"github.com/jkral/interwiki/pkg/observability"
)

// pageResult is one entry of a query's pages array.
type pageResult struct {
	PageID    int    `json:"pageid"`
	NS        int    `json:"ns"`
	Title     string `json:"title"`
	Missing   bool   `json:"missing"`
	LangLinks []struct {
		Lang  string `json:"lang"`
		Title string `json:"title"`
	} `json:"langlinks"`
	Categories []struct {
		Title string `json:"title"`
	} `json:"categories"`
	CategoryInfo *struct {
		Pages   int `json:"pages"`
		Subcats int `json:"subcats"`
		Files   int `json:"files"`
	} `json:"categoryinfo"`
	Revisions []struct {
		Timestamp time.Time `json:"timestamp"`
		Slots     struct {
			Main struct {
				Content string `json:"content"`
			} `json:"main"`
		} `json:"slots"`
	} `json:"revisions"`
}

// ListPages returns every page of a namespace together with its
// recorded langlinks, sorted by title.
func (c *Client) ListPages(ctx context.Context, namespace int) ([]family.Page, error) {
	var pages []family.Page
	key := fmt.Sprintf("allpages:ns%d", namespace)
	err := c.cached(ctx, key, &pages, func() error {
		observability.Sync().OnListingStart(ctx, "allpages")
		start := time.Now()

		params := c.baseParams()
		params.Set("generator", "allpages")
		params.Set("gaplimit", "max")
		params.Set("gapnamespace", fmt.Sprint(namespace))
		params.Set("gapfilterredir", "nonredirects")
		params.Set("prop", "langlinks")
		params.Set("lllimit", "max")

		merged := make(map[string]*family.Page)
		err := c.queryAll(ctx, params, func(query json.RawMessage) error {
			var q struct {
				Pages []pageResult `json:"pages"`
			}
			if err := json.Unmarshal(query, &q); err != nil {
				return errors.Wrap(errors.ErrCodeAPI, err, "decoding allpages")
			}
			for _, pr := range q.Pages {
				p, ok := merged[pr.Title]
				if !ok {
					p = &family.Page{ID: pr.PageID, Title: pr.Title, Namespace: pr.NS}
					merged[pr.Title] = p
				}
				for _, ll := range pr.LangLinks {
					p.LangLinks = append(p.LangLinks, family.LangLink{Tag: ll.Lang, Title: ll.Title})
				}
			}
			return nil
		})
		if err != nil {
			observability.Sync().OnListingComplete(ctx, "allpages", 0, time.Since(start), err)
			return err
		}

		pages = pages[:0]
		for _, p := range merged {
			pages = append(pages, *p)
		}
		sort.Slice(pages, func(i, j int) bool { return pages[i].Title < pages[j].Title })
		observability.Sync().OnListingComplete(ctx, "allpages", len(pages), time.Since(start), nil)
		return nil
	})
	return pages, err
}

// ListRedirects returns the redirect map of a namespace: source title
// to target title, fragments stripped.
func (c *Client) ListRedirects(ctx context.Context, namespace int) (map[string]string, error) {
	redirects := make(map[string]string)
	key := fmt.Sprintf("redirects:ns%d", namespace)
	err := c.cached(ctx, key, &redirects, func() error {
		observability.Sync().OnListingStart(ctx, "redirects")
		start := time.Now()

		params := c.baseParams()
		params.Set("generator", "allpages")
		params.Set("gaplimit", "max")
		params.Set("gapnamespace", fmt.Sprint(namespace))
		params.Set("gapfilterredir", "redirects")
		params.Set("redirects", "1")

		err := c.queryAll(ctx, params, func(query json.RawMessage) error {
			var q struct {
				Redirects []struct {
					From string `json:"from"`
					To   string `json:"to"`
				} `json:"redirects"`
			}
			if err := json.Unmarshal(query, &q); err != nil {
				return errors.Wrap(errors.ErrCodeAPI, err, "decoding redirects")
			}
			for _, r := range q.Redirects {
				to := r.To
				if i := strings.Index(to, "#"); i >= 0 {
					to = to[:i]
				}
				redirects[r.From] = to
			}
			return nil
		})
		observability.Sync().OnListingComplete(ctx, "redirects", len(redirects), time.Since(start), err)
		return err
	})
	return redirects, err
}

// ListCategories returns every category page with its parents and
// counters, sorted by title. It implements part of [catgraph.Source].
func (c *Client) ListCategories(ctx context.Context) ([]catgraph.Record, error) {
	var records []catgraph.Record
	err := c.cached(ctx, "categories", &records, func() error {
		observability.Sync().OnListingStart(ctx, "categories")
		start := time.Now()

		params := c.baseParams()
		params.Set("generator", "allpages")
		params.Set("gaplimit", "max")
		params.Set("gapnamespace", "14")
		params.Set("prop", "categories|categoryinfo")
		params.Set("cllimit", "max")
		params.Set("clshow", "!hidden")

		merged := make(map[string]*catgraph.Record)
		err := c.queryAll(ctx, params, func(query json.RawMessage) error {
			var q struct {
				Pages []pageResult `json:"pages"`
			}
			if err := json.Unmarshal(query, &q); err != nil {
				return errors.Wrap(errors.ErrCodeAPI, err, "decoding categories")
			}
			for _, pr := range q.Pages {
				rec, ok := merged[pr.Title]
				if !ok {
					rec = &catgraph.Record{Title: pr.Title}
					merged[pr.Title] = rec
				}
				for _, cat := range pr.Categories {
					rec.Parents = append(rec.Parents, cat.Title)
				}
				if pr.CategoryInfo != nil {
					rec.Info = catgraph.Info{
						Pages:   pr.CategoryInfo.Pages,
						Subcats: pr.CategoryInfo.Subcats,
						Files:   pr.CategoryInfo.Files,
					}
				}
			}
			return nil
		})
		if err != nil {
			observability.Sync().OnListingComplete(ctx, "categories", 0, time.Since(start), err)
			return err
		}

		records = records[:0]
		for _, rec := range merged {
			records = append(records, *rec)
		}
		sort.Slice(records, func(i, j int) bool { return records[i].Title < records[j].Title })
		observability.Sync().OnListingComplete(ctx, "categories", len(records), time.Since(start), nil)
		return nil
	})
	return records, err
}

// ListWantedCategories returns categories that have members but no
// page of their own. It implements part of [catgraph.Source]. The
// result is never cached: wanted categories change with every
// category page created.
func (c *Client) ListWantedCategories(ctx context.Context) ([]string, error) {
	params := c.baseParams()
	params.Set("list", "querypage")
	params.Set("qppage", "Wantedcategories")
	params.Set("qplimit", "max")

	var wanted []string
	err := c.queryAll(ctx, params, func(query json.RawMessage) error {
		var q struct {
			QueryPage struct {
				Results []struct {
					Title string `json:"title"`
				} `json:"results"`
			} `json:"querypage"`
		}
		if err := json.Unmarshal(query, &q); err != nil {
			return errors.Wrap(errors.ErrCodeAPI, err, "decoding wanted categories")
		}
		for _, r := range q.QueryPage.Results {
			wanted = append(wanted, r.Title)
		}
		return nil
	})
	return wanted, err
}

// FetchPageContent fetches the latest revision text and timestamp of
// the given titles. Missing pages are silently omitted. It implements
// part of [family.ContentSource]; content is never cached.
func (c *Client) FetchPageContent(ctx context.Context, titles []string) ([]family.PageContent, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	params := c.baseParams()
	params.Set("titles", strings.Join(titles, "|"))
	params.Set("prop", "revisions")
	params.Set("rvprop", "content|timestamp")
	params.Set("rvslots", "main")

	var contents []family.PageContent
	err := c.queryAll(ctx, params, func(query json.RawMessage) error {
		var q struct {
			Pages []pageResult `json:"pages"`
		}
		if err := json.Unmarshal(query, &q); err != nil {
			return errors.Wrap(errors.ErrCodeAPI, err, "decoding revisions")
		}
		for _, pr := range q.Pages {
			if pr.Missing || len(pr.Revisions) == 0 {
				continue
			}
			rev := pr.Revisions[0]
			contents = append(contents, family.PageContent{
				Title:     pr.Title,
				ID:        pr.PageID,
				Text:      rev.Slots.Main.Content,
				Timestamp: rev.Timestamp,
			})
		}
		return nil
	})
	return contents, err
}
