// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
package script

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stvp/assert"
)

func TestEsc(t *testing.T) {
	for _, c := range []struct{ in, want string }{
		{"plain text", "plain text"},
		{`back\slash`, `back\\slash`},
		{`say "hi"`, `say \"hi\"`},
		{"line\nbreak", `line\nbreak`},
		{"car\rriage", `car\rriage`},
		{"tab\there", `tab\there`},
		{"<p>", `\u003cp>`},
		{"</script>", `\u003c/script>`},
		{"<!--", `\u003c!--`},
		{"\u2028", `\u2028`},
		{"\u2029", `\u2029`},
		{"\x01", `\u0001`},
		{"\x00", `\u0000`},
		{"umläut – ünicode", "umläut – ünicode"},
	} {
		assert.Equal(t, c.want, Esc(c.in), c.in)
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a \"b\" \u003c/script>"`, Quote(`a "b" </script>`))
}

func TestWriteRejectsInvalidUTF8(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	sw := StringWriter{Escape: buf}
	_, err := sw.Write([]byte{0xff, 0xfe})
	assert.NotNil(t, err)
}

func TestWriteSplitRunes(t *testing.T) {
	// a rune arriving byte by byte must come out whole
	buf := bytes.NewBuffer(nil)
	sw := StringWriter{Escape: buf}
	for _, b := range []byte("ä<ö") {
		if _, err := sw.Write([]byte{b}); err != nil {
			t.Fatal(err)
		}
	}
	assert.Equal(t, `ä\u003cö`, buf.String())
}

func ExampleQuote() {
	fmt.Println(Quote("<script>alert('x')</script>"))
	// Output:
	// "\u003cscript>alert('x')\u003c/script>"
}
