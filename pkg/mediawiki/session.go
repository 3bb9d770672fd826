package mediawiki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"

	"github.com/jkral/interwiki/pkg/errors"
)

func newCookieJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

// Login authenticates the client with a bot password. The session is
// held in the client's cookie jar; subsequent edits act as the bot
// account.
func (c *Client) Login(ctx context.Context, username, password string) error {
	params := c.baseParams()
	params.Set("action", "query")
	params.Set("meta", "tokens")
	params.Set("type", "login")

	env, err := c.get(ctx, params)
	if err != nil {
		return err
	}
	var q struct {
		Tokens struct {
			LoginToken string `json:"logintoken"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(env.Query, &q); err != nil {
		return errors.Wrap(errors.ErrCodeAPI, err, "decoding login token")
	}

	params = c.baseParams()
	params.Set("action", "login")
	params.Set("lgname", username)
	params.Set("lgpassword", password)
	params.Set("lgtoken", q.Tokens.LoginToken)

	env, err = c.post(ctx, params)
	if err != nil {
		return err
	}
	var result struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	if err := json.Unmarshal(env.Raw, &result); err != nil {
		return errors.Wrap(errors.ErrCodeAPI, err, "decoding login result")
	}
	if result.Login.Result != "Success" {
		return errors.New(errors.ErrCodeUnauthorized, "login failed: %s %s", result.Login.Result, result.Login.Reason)
	}

	// edit tokens issued before login are anonymous
	c.csrfToken = ""
	c.logger.Info("logged in", "user", username)
	return nil
}

// LoggedIn reports whether the client holds an authenticated session.
func (c *Client) LoggedIn(ctx context.Context) (bool, error) {
	params := c.baseParams()
	params.Set("action", "query")
	params.Set("meta", "userinfo")

	env, err := c.get(ctx, params)
	if err != nil {
		return false, err
	}
	var q struct {
		UserInfo struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
			Anon bool   `json:"anon"`
		} `json:"userinfo"`
	}
	if err := json.Unmarshal(env.Query, &q); err != nil {
		return false, errors.Wrap(errors.ErrCodeAPI, err, "decoding userinfo")
	}
	return !q.UserInfo.Anon && q.UserInfo.ID != 0, nil
}
