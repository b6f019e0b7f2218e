// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
package pagelets

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Writer keeps the placeholder bookkeeping for one rendering session. It
// assigns placeholder indices in first-seen order and tracks the pending
// set: the pagelets that stand in the delivered output as placeholders
// until their fixup went out. The Writer never owns the pagelets, it only
// reads their state.
//
// All methods serialize on an internal lock so that fixup rounds driven
// by readiness signals from other goroutines never race with each other
// or with in-place emission. The Writer itself never blocks or waits;
// when to run a round is the caller's decision.
type Writer struct {
	mu      sync.Mutex
	nextIdx int
	idxs    map[Pagelet]int
	pending map[int]Pagelet
}

func NewWriter() *Writer {
	return &Writer{
		idxs:    make(map[Pagelet]int),
		pending: make(map[int]Pagelet),
	}
}

// Idx returns the placeholder index of p. The first call for a pagelet
// assigns the next free index; every later call returns the same value.
// Indices are unique per Writer and never reused, so every placeholder id
// in the output names exactly one spot in the document.
func (w *Writer) Idx(p Pagelet) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idx(p)
}

func (w *Writer) idx(p Pagelet) int {
	if i, ok := w.idxs[p]; ok {
		return i
	}
	i := w.nextIdx
	w.nextIdx++
	w.idxs[p] = i
	return i
}

func (w *Writer) track(pending []Pagelet) {
	for _, p := range pending {
		w.pending[w.idx(p)] = p
	}
}

// trackIdx is the index factory handed to emitting pagelets. Allocation
// happens when a placeholder is being written, so the pagelet joins the
// pending set right here. This keeps placeholders that already reached
// the stream tracked even when a later sibling's emit fails and the
// pending return value never arrives.
func (w *Writer) trackIdx(p Pagelet) int {
	i := w.idx(p)
	w.pending[i] = p
	return i
}

// EmitInPlace emits p to wr and registers every placeholder p left in the
// output for later fixup rounds.
func (w *Writer) EmitInPlace(p Pagelet, wr io.Writer) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return CatchEmit(func() int {
		n, pending := p.EmitInPlace(wr, w.trackIdx)
		w.track(pending)
		return n
	})
}

// EmitFixups runs one resolution round: every pagelet whose placeholder
// stands in the output and whose content is loaded by now gets its fixup
// written to wr and leaves the pending set for good. Placeholders that
// the freshly revealed content produced join the pending set but are not
// resolved before the next round, even when they are already loaded.
// Pagelets still unloaded stay untouched for a later round; a round where
// nothing is loaded writes nothing and changes nothing.
func (w *Writer) EmitFixups(wr io.Writer) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return CatchEmit(func() (n int) {
		idxs := make([]int, 0, len(w.pending))
		for i := range w.pending {
			idxs = append(idxs, i)
		}
		sort.Ints(idxs)
		for _, i := range idxs {
			p := w.pending[i]
			if !p.Loaded() {
				continue
			}
			c, pending := EmitFixup(wr, p, i, w.trackIdx)
			n += c
			delete(w.pending, i)
			w.track(pending)
		}
		return n
	})
}

// HasPendingFixups tells if any placeholder in the delivered output still
// waits for its fixup.
func (w *Writer) HasPendingFixups() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending) > 0
}

// PendingError reports placeholders that went out to the client but never
// got their fixup. Idxs holds the affected placeholder indices in
// ascending order.
type PendingError struct {
	Idxs []int
}

func (pe *PendingError) Error() string {
	return fmt.Sprintf("unresolved pagelet placeholders %v", pe.Idxs)
}

// Finish checks that the session leaves no placeholder unresolved. A
// pagelet still pending when the document ends stays broken in the
// client's document forever, so this is a hard error, never something to
// ignore silently.
func (w *Writer) Finish() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	pe := &PendingError{Idxs: make([]int, 0, len(w.pending))}
	for i := range w.pending {
		pe.Idxs = append(pe.Idxs, i)
	}
	sort.Ints(pe.Idxs)
	return pe
}
