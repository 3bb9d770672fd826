package mediawiki

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkral/interwiki/pkg/errors"
)

// wikiStub answers token queries and records submitted edits.
type wikiStub struct {
	t     *testing.T
	token string
	edits []map[string]string
	reply string
}

func (s *wikiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		require.Equal(s.t, "tokens", q.Get("meta"))
		require.Equal(s.t, "csrf", q.Get("type"))
		resp, err := json.Marshal(map[string]any{
			"query": map[string]any{"tokens": map[string]string{"csrftoken": s.token}},
		})
		require.NoError(s.t, err)
		w.Write(resp)
		return
	}

	require.NoError(s.t, r.ParseForm())
	params := map[string]string{}
	for k := range r.PostForm {
		params[k] = r.PostForm.Get(k)
	}
	s.edits = append(s.edits, params)

	reply := s.reply
	if reply == "" {
		reply = `{"edit": {"result": "Success"}}`
	}
	w.Write([]byte(reply))
}

func newEditClient(t *testing.T, stub *wikiStub) *Client {
	t.Helper()
	stub.t = t
	if stub.token == "" {
		stub.token = `0123456789abcdef+\`
	}
	return newTestClient(t, stub.ServeHTTP)
}

func TestEditPage(t *testing.T) {
	stub := &wikiStub{}
	client := newEditClient(t, stub)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := client.EditPage(context.Background(), "Guide", 7, "New text.", "update interlanguage links", base)
	require.NoError(t, err)

	require.Len(t, stub.edits, 1)
	edit := stub.edits[0]
	assert.Equal(t, "edit", edit["action"])
	assert.Equal(t, "7", edit["pageid"])
	assert.Equal(t, "New text.", edit["text"])
	assert.Equal(t, "update interlanguage links", edit["summary"])
	assert.Equal(t, `0123456789abcdef+\`, edit["token"])
	assert.Equal(t, "1", edit["bot"])
	assert.Equal(t, "1", edit["nocreate"])
	assert.Equal(t, "2024-05-01T12:00:00Z", edit["basetimestamp"])
}

func TestEditPageZeroTimestampOmitted(t *testing.T) {
	stub := &wikiStub{}
	client := newEditClient(t, stub)

	err := client.EditPage(context.Background(), "Guide", 7, "Text.", "summary", time.Time{})
	require.NoError(t, err)

	require.Len(t, stub.edits, 1)
	_, ok := stub.edits[0]["basetimestamp"]
	assert.False(t, ok)
}

func TestEditTokenIsReused(t *testing.T) {
	stub := &wikiStub{}
	client := newEditClient(t, stub)

	ctx := context.Background()
	require.NoError(t, client.EditPage(ctx, "A", 1, "x", "s", time.Time{}))
	require.NoError(t, client.EditPage(ctx, "B", 2, "y", "s", time.Time{}))

	// one token fetch, two edits
	assert.Len(t, stub.edits, 2)
}

func TestAnonymousTokenRejected(t *testing.T) {
	stub := &wikiStub{token: `+\`}
	client := newEditClient(t, stub)

	err := client.EditPage(context.Background(), "Guide", 7, "Text.", "summary", time.Time{})
	assert.True(t, errors.Is(err, errors.ErrCodeUnauthorized), "got %v", err)
	assert.Empty(t, stub.edits)
}

func TestEditConflict(t *testing.T) {
	stub := &wikiStub{reply: `{"error": {"code": "editconflict", "info": "Edit conflict."}}`}
	client := newEditClient(t, stub)

	err := client.EditPage(context.Background(), "Guide", 7, "Text.", "summary", time.Time{})
	assert.True(t, errors.Is(err, errors.ErrCodeEditConflict), "got %v", err)
}

func TestEditFailureResult(t *testing.T) {
	stub := &wikiStub{reply: `{"edit": {"result": "Failure"}}`}
	client := newEditClient(t, stub)

	err := client.EditPage(context.Background(), "Guide", 7, "Text.", "summary", time.Time{})
	assert.True(t, errors.Is(err, errors.ErrCodeAPI), "got %v", err)
}

func TestCreateCategory(t *testing.T) {
	stub := &wikiStub{}
	client := newEditClient(t, stub)

	err := client.CreateCategory(context.Background(), "Category:Xfce (Čeština)",
		"[[Category:Desktop environments (Čeština)]]", "init wanted category")
	require.NoError(t, err)

	require.Len(t, stub.edits, 1)
	edit := stub.edits[0]
	assert.Equal(t, "Category:Xfce (Čeština)", edit["title"])
	assert.Equal(t, "[[Category:Desktop environments (Čeština)]]", edit["text"])
	assert.Equal(t, "1", edit["createonly"])
	_, ok := edit["pageid"]
	assert.False(t, ok)
}
