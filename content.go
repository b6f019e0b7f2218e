// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
package pagelets

import (
	"fmt"
	"io"
)

// Generator makes a plain emit function usable as an always loaded
// pagelet.
type Generator func(wr io.Writer) int

func (f Generator) Loaded() bool { return true }

func (f Generator) EmitInPlace(wr io.Writer, _ IdxFactory) (int, []Pagelet) {
	return f(wr), nil
}

type fmtCnt struct {
	fmt string
	val []interface{}
}

// Printf returns an always loaded pagelet that emits like fmt.Fprintf.
// Note that nothing escapes the result for HTML.
func Printf(fmt string, vs ...interface{}) Pagelet {
	return fmtCnt{fmt, vs}
}

func (fc fmtCnt) Loaded() bool { return true }

func (fc fmtCnt) EmitInPlace(wr io.Writer, _ IdxFactory) (int, []Pagelet) {
	if n, err := fmt.Fprintf(wr, fc.fmt, fc.val...); err != nil {
		panic(EmitError{n, err})
	} else {
		return n, nil
	}
}

// Print is an always loaded pagelet that emits V like fmt.Fprint.
type Print struct {
	V interface{}
}

func (c Print) Loaded() bool { return true }

func (c Print) EmitInPlace(wr io.Writer, _ IdxFactory) (int, []Pagelet) {
	if n, err := fmt.Fprint(wr, c.V); err != nil {
		panic(EmitError{n, err})
	} else {
		return n, nil
	}
}

// Data is an always loaded pagelet that emits its bytes verbatim.
type Data []byte

func (d Data) Loaded() bool { return true }

func (d Data) EmitInPlace(wr io.Writer, _ IdxFactory) (int, []Pagelet) {
	n, err := wr.Write(d)
	if err != nil {
		panic(EmitError{n, err})
	}
	return n, nil
}
