// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
package web

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/strager/pagelets"
)

// placeholderIDs collects the ids of hidden placeholder divs in markup.
func placeholderIDs(t *testing.T, markup string) (ids []string) {
	t.Helper()
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return ids
		}
		if tt != html.StartTagToken {
			continue
		}
		tok := z.Token()
		if tok.Data != "div" {
			continue
		}
		for _, a := range tok.Attr {
			if a.Key == "id" && strings.HasPrefix(a.Val, "__pagelet_placeholder_") {
				ids = append(ids, a.Val)
			}
		}
	}
}

func TestSessionProgressiveDelivery(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewSession(rec, WithLogger(slog.New(slog.NewTextHandler(
		&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}))))

	require.NoError(t, s.WriteHTML("<body><p>shell"))
	tp := pagelets.NewTriggered(pagelets.NewLiteral("<p>late content"))
	require.NoError(t, s.Emit(tp))
	s.Flush()
	assert.True(t, rec.Flushed)
	assert.True(t, s.Pending())

	shell := rec.Body.String()
	assert.Equal(t, []string{"__pagelet_placeholder_0"}, placeholderIDs(t, shell))
	assert.NotContains(t, shell, "late content")

	tp.SetLoaded()
	require.NoError(t, s.EmitFixups())
	assert.False(t, s.Pending())
	require.NoError(t, s.Finish("</body>"))

	body := rec.Body.String()
	placeholderAt := strings.Index(body, `id="__pagelet_placeholder_0"`)
	fixupAt := strings.Index(body, `document.getElementById("__pagelet_placeholder_0")`)
	require.True(t, placeholderAt >= 0)
	require.True(t, fixupAt >= 0)
	assert.Less(t, placeholderAt, fixupAt,
		"placeholder must be delivered before its fixup")
	assert.True(t, strings.HasSuffix(body, "</body>"))
}

func TestSessionFinishWithPendingFails(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewSession(rec)
	require.NoError(t, s.Emit(pagelets.NewTriggered(pagelets.NewLiteral("x"))))
	err := s.Finish("</body>")
	require.Error(t, err)
	var pe *pagelets.PendingError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []int{0}, pe.Idxs)
	assert.NotContains(t, rec.Body.String(), "</body>")
}

func TestSessionFixupRoundPerSignal(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewSession(rec)
	t1 := pagelets.NewTriggered(pagelets.NewLiteral("<li>one"))
	t2 := pagelets.NewTriggered(pagelets.NewLiteral("<li>two"))
	require.NoError(t, s.Emit(pagelets.NewMulti(
		pagelets.NewLiteral("<ol>"), t1, t2, pagelets.NewLiteral("</ol>"))))
	assert.Len(t, placeholderIDs(t, rec.Body.String()), 2)

	t2.SetLoaded()
	require.NoError(t, s.EmitFixups())
	assert.True(t, s.Pending())

	t1.SetLoaded()
	require.NoError(t, s.EmitFixups())
	assert.False(t, s.Pending())
	require.NoError(t, s.Finish("</body>"))
}

func TestWritePadding(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewSession(rec)
	require.NoError(t, s.WritePadding(100))
	assert.Equal(t, 100, strings.Count(rec.Body.String(), "<span></span>"))
}

func TestNewSessionWithoutFlusher(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(&buf)
	require.NoError(t, s.WriteHTML("x"))
	s.Flush() // must not panic on a plain writer
	assert.Equal(t, "x", buf.String())
}
