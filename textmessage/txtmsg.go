// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
package textmessage

import (
	"io"

	"github.com/strager/pagelets"
	"golang.org/x/text/message"
)

// Content emits a localized message as always loaded pagelet content.
type Content struct {
	Printer *message.Printer
	Format  string
	Values  []interface{}
}

func (c Content) Loaded() bool { return true }

func (c Content) EmitInPlace(wr io.Writer, _ pagelets.IdxFactory) (n int, pending []pagelets.Pagelet) {
	n, err := c.Printer.Fprintf(wr, c.Format, c.Values...)
	if err != nil {
		panic(pagelets.EmitError{Count: n, Err: err})
	} else {
		return n, nil
	}
}

func Msg(pr *message.Printer, fmt string, values ...interface{}) Content {
	return Content{pr, fmt, values}
}
