package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/jkral/interwiki/pkg/errors"
	"github.com/jkral/interwiki/pkg/observability"
)

// fetchCSRFToken returns the cached edit token, fetching one on first use.
func (c *Client) fetchCSRFToken(ctx context.Context) (string, error) {
	if c.csrfToken != "" {
		return c.csrfToken, nil
	}
	params := c.baseParams()
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", "csrf")

	env, err := c.get(ctx, params)
	if err != nil {
		return "", err
	}
	var q struct {
		Tokens struct {
			CSRFToken string `json:"csrftoken"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(env.Query, &q); err != nil {
		return "", errors.Wrap(errors.ErrCodeAPI, err, "decoding token")
	}
	if q.Tokens.CSRFToken == "" || q.Tokens.CSRFToken == "+\\" {
		return "", errors.New(errors.ErrCodeUnauthorized, "no edit token granted, log in first")
	}
	c.csrfToken = q.Tokens.CSRFToken
	return c.csrfToken, nil
}

// editResult is the payload of a successful action=edit response.
type editResult struct {
	Edit struct {
		Result   string `json:"result"`
		NoChange bool   `json:"nochange"`
	} `json:"edit"`
}

// EditPage replaces the text of an existing page. The base timestamp
// is the timestamp of the revision the new text was derived from; the
// wiki rejects the edit with an edit conflict if the page changed
// since. It implements part of [family.ContentSource].
func (c *Client) EditPage(ctx context.Context, title string, pageID int, text, summary string, baseTimestamp time.Time) error {
	token, err := c.fetchCSRFToken(ctx)
	if err != nil {
		return err
	}

	params := c.baseParams()
	params.Set("action", "edit")
	params.Set("pageid", fmt.Sprint(pageID))
	params.Set("text", text)
	params.Set("summary", summary)
	params.Set("token", token)
	params.Set("bot", "1")
	params.Set("nocreate", "1")
	if !baseTimestamp.IsZero() {
		params.Set("basetimestamp", baseTimestamp.UTC().Format(time.RFC3339))
	}

	err = c.submitEdit(ctx, params)
	observability.Sync().OnEdit(ctx, title, summary, err)
	if err != nil {
		return err
	}
	c.logger.Info("edited page", "title", title, "summary", summary)
	return nil
}

// CreateCategory creates a new category page. It implements part of
// [catgraph.Source]. Fails if the page already exists.
func (c *Client) CreateCategory(ctx context.Context, title, content, summary string) error {
	token, err := c.fetchCSRFToken(ctx)
	if err != nil {
		return err
	}

	params := c.baseParams()
	params.Set("action", "edit")
	params.Set("title", title)
	params.Set("text", content)
	params.Set("summary", summary)
	params.Set("token", token)
	params.Set("bot", "1")
	params.Set("createonly", "1")

	err = c.submitEdit(ctx, params)
	observability.Sync().OnEdit(ctx, title, summary, err)
	if err != nil {
		return err
	}
	c.logger.Info("created page", "title", title, "summary", summary)
	return nil
}

func (c *Client) submitEdit(ctx context.Context, params url.Values) error {
	env, err := c.post(ctx, params)
	if err != nil {
		return err
	}
	var result editResult
	if err := json.Unmarshal(env.Raw, &result); err != nil {
		return errors.Wrap(errors.ErrCodeAPI, err, "decoding edit result")
	}
	if result.Edit.Result != "Success" {
		return errors.New(errors.ErrCodeAPI, "edit result: %s", result.Edit.Result)
	}
	return nil
}
