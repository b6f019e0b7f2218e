// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager

// Package script encodes captured HTML for embedding inside a JavaScript
// string literal. The encoding must keep every '<' out of the output so
// that no '</script' sequence – and no '<!--' – can terminate the
// enclosing script element early. Getting this wrong is a content
// injection bug, not a cosmetic one.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// StringWriter escapes everything written to it for the inside of a
// double quoted JavaScript string literal and forwards the escaped bytes
// to Escape. Input must be valid UTF-8.
type StringWriter struct {
	Escape io.Writer
	buf    [utf8.UTFMax]byte
	wp     int
}

func (sw *StringWriter) Write(p []byte) (n int, err error) {
	for _, b := range p {
		sw.buf[sw.wp] = b
		sw.wp++
		if buf := sw.buf[:sw.wp]; utf8.FullRune(buf) {
			sw.wp = 0
			r, _ := utf8.DecodeRune(buf)
			if r == utf8.RuneError {
				return n, errors.New("utf8 rune decoding error")
			}
			var esc string
			switch {
			case r == '\\':
				esc = `\\`
			case r == '"':
				esc = `\"`
			case r == '\n':
				esc = `\n`
			case r == '\r':
				esc = `\r`
			case r == '\t':
				esc = `\t`
			case r == '<':
				esc = `\u003c`
			case r == '\u2028':
				// line and paragraph separators are line terminators in
				// JavaScript source, raw they would split the literal
				esc = `\u2028`
			case r == '\u2029':
				esc = `\u2029`
			case r < 0x20:
				esc = fmt.Sprintf(`\u%04x`, r)
			default:
				if i, err := sw.Escape.Write(buf); err != nil {
					return n + i, err
				} else {
					n += i
					continue
				}
			}
			if i, err := sw.Escape.Write([]byte(esc)); err != nil {
				return n + i, err
			} else {
				n += i
			}
		}
	}
	return n, nil
}

// Esc returns str escaped for the inside of a double quoted JavaScript
// string literal.
func Esc(str string) string {
	buf := bytes.NewBuffer(nil)
	ewr := StringWriter{Escape: buf}
	if _, err := ewr.Write([]byte(str)); err != nil {
		panic(err)
	}
	return buf.String()
}

// Quote returns str as a complete double quoted JavaScript string
// literal.
func Quote(str string) string {
	return `"` + Esc(str) + `"`
}
