// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager

// Package web drives progressive pagelet delivery over net/http. A
// Session wraps one response stream, keeps the pagelet bookkeeping and
// exposes the flush points that make the client render what it already
// got. The transport has to keep the connection open across fixup
// rounds; HTTP/1.1 chunked responses do.
package web

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/strager/pagelets"
)

// Session delivers one HTML document progressively. Shell markup and
// pagelets go out through a single writer; placeholders left behind are
// resolved in later fixup rounds. One goroutine drives the session;
// readiness signals may come from anywhere, the pagelet Writer
// serializes them.
type Session struct {
	Pagelets *pagelets.Writer
	out      io.Writer
	flusher  http.Flusher
	log      *slog.Logger
}

// NewSession starts a rendering session on wr. When wr also is an
// http.Flusher – as HTTP/1.1 response writers are – Flush pushes partial
// output to the client; otherwise Flush is a no-op.
func NewSession(wr io.Writer, opts ...func(*Session)) *Session {
	s := &Session{Pagelets: pagelets.NewWriter(), out: wr}
	if f, ok := wr.(http.Flusher); ok {
		s.flusher = f
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WithLogger lets the session log its emission phases to l.
func WithLogger(l *slog.Logger) func(*Session) {
	return func(s *Session) { s.log = l }
}

// WriteHTML writes static shell markup verbatim.
func (s *Session) WriteHTML(html string) error {
	_, err := io.WriteString(s.out, html)
	return err
}

// WritePadding writes n empty span elements. Some browsers hold back
// progressive rendering until a minimum number of bytes arrived.
func (s *Session) WritePadding(n int) error {
	return s.WriteHTML(strings.Repeat("<span></span>", n))
}

// Emit writes p in place: loaded content directly, placeholders for
// everything not ready yet.
func (s *Session) Emit(p pagelets.Pagelet) error {
	n, err := s.Pagelets.EmitInPlace(p, s.out)
	if err != nil {
		return err
	}
	if s.log != nil {
		s.log.Debug("pagelet emitted in place",
			"bytes", n,
			"pending", s.Pagelets.HasPendingFixups())
	}
	return nil
}

// EmitFixups runs one fixup round for the pagelets loaded since the last
// round. Call it after every readiness signal, then Flush when the client
// is supposed to see the result.
func (s *Session) EmitFixups() error {
	n, err := s.Pagelets.EmitFixups(s.out)
	if err != nil {
		return err
	}
	if s.log != nil {
		s.log.Debug("pagelet fixup round",
			"bytes", n,
			"pending", s.Pagelets.HasPendingFixups())
	}
	return nil
}

// Flush pushes buffered output to the client if the transport supports
// it.
func (s *Session) Flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// Pending tells if placeholders in the delivered output still wait for
// their fixup.
func (s *Session) Pending() bool {
	return s.Pagelets.HasPendingFixups()
}

// Finish ends the session: it checks that no placeholder stays
// unresolved, writes the closing markup and flushes. With placeholders
// still pending the document must not be closed, so Finish returns the
// pagelet Writer's error and writes nothing.
func (s *Session) Finish(closing string) error {
	if err := s.Pagelets.Finish(); err != nil {
		if s.log != nil {
			s.log.Error("pagelet session finished too early", "err", err)
		}
		return err
	}
	if err := s.WriteHTML(closing); err != nil {
		return err
	}
	s.Flush()
	return nil
}
