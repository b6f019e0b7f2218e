// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
package pagelets

import (
	"io"
	"sync/atomic"
)

// IdxFactory hands out the placeholder index assigned to a pagelet.
// Calling it again with the same pagelet returns the same index. The
// Writer supplies the factory; pagelet implementations only pass it on to
// nested pagelets and call it at the moment they write a placeholder –
// the Writer piggybacks its pending bookkeeping on that call.
type IdxFactory func(p Pagelet) int

// Pagelet is an independently resolvable piece of an HTML document that
// may or may not be ready when the document around it goes out.
//
// Different than the standard write methods, EmitInPlace only returns the
// number of bytes written. If an I/O error occurs it panics with an
// EmitError. Writer methods use CatchEmit to switch back to standard
// (n int, err error) results. This convention keeps nested pagelet
// implementations free of error plumbing.
type Pagelet interface {
	// Loaded tells if the pagelet's own content – not necessarily the
	// content of nested pagelets – can be emitted now.
	Loaded() bool
	// EmitInPlace writes the pagelet's current representation to wr:
	// real content when loaded, an inert placeholder when not. It
	// returns the pagelets now standing in the output as placeholders,
	// possibly including the receiver itself. The caller has to track
	// those for later fixup rounds.
	EmitInPlace(wr io.Writer, idx IdxFactory) (n int, pending []Pagelet)
}

type EmitError struct {
	Count int
	Err   error
}

func (ee EmitError) Error() string {
	return ee.Err.Error()
}

// CatchEmit runs emit and converts an EmitError panic back to a standard
// (n int, err error) I/O result. Other panics pass through.
func CatchEmit(emit func() int) (n int, err error) {
	defer func() {
		if rek := recover(); rek != nil {
			if ee, ok := rek.(EmitError); ok {
				n = ee.Count
				err = ee.Err
			} else {
				panic(rek)
			}
		}
	}()
	n = emit()
	return n, nil
}

// Literal is a leaf pagelet with fixed HTML content. It is always loaded.
type Literal struct {
	html []byte
}

func NewLiteral(html string) *Literal {
	return &Literal{html: []byte(html)}
}

func (l *Literal) Loaded() bool { return true }

func (l *Literal) EmitInPlace(wr io.Writer, _ IdxFactory) (n int, pending []Pagelet) {
	n, err := wr.Write(l.html)
	if err != nil {
		panic(EmitError{n, err})
	}
	return n, nil
}

// Triggered wraps a pagelet whose content is not available until some
// external event calls SetLoaded. Until then it stands in the output as a
// placeholder. Once loaded it emits exactly like the wrapped pagelet, as
// if the wrapper were not there.
//
// Triggered is the only pagelet with a state transition: pending to
// loaded, one-way, exactly once.
type Triggered struct {
	wraps  Pagelet
	loaded atomic.Bool
}

func NewTriggered(wraps Pagelet) *Triggered {
	return &Triggered{wraps: wraps}
}

// SetLoaded marks the wrapped content as available. The transition is
// idempotent and may come from any goroutine. It does not touch output
// already sent; the placeholder is replaced by the next fixup round a
// Writer runs.
func (tp *Triggered) SetLoaded() { tp.loaded.Store(true) }

func (tp *Triggered) Loaded() bool { return tp.loaded.Load() }

func (tp *Triggered) EmitInPlace(wr io.Writer, idx IdxFactory) (n int, pending []Pagelet) {
	if tp.loaded.Load() {
		return tp.wraps.EmitInPlace(wr, idx)
	}
	return EmitPlaceholder(wr, tp, idx(tp))
}

// Multi emits a sequence of pagelets one after the other. As a pure
// grouping construct it is always loaded itself; readiness stays with the
// grouped pagelets, which report their pending placeholders through it.
type Multi struct {
	pagelets []Pagelet
}

func NewMulti(ps ...Pagelet) *Multi {
	res := Multi{pagelets: make([]Pagelet, len(ps))}
	copy(res.pagelets, ps)
	return &res
}

// Add appends p to the end of the sequence.
func (m *Multi) Add(p Pagelet) {
	m.pagelets = append(m.pagelets, p)
}

func (m *Multi) Loaded() bool { return true }

func (m *Multi) EmitInPlace(wr io.Writer, idx IdxFactory) (n int, pending []Pagelet) {
	for _, p := range m.pagelets {
		c, pps := p.EmitInPlace(wr, idx)
		n += c
		pending = append(pending, pps...)
	}
	return n, pending
}
