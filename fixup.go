// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
package pagelets

import (
	"bytes"
	"fmt"
	"io"

	"github.com/strager/pagelets/script"
)

// PlaceholderID returns the DOM id that carries a placeholder index
// through the delivered document.
func PlaceholderID(index int) string {
	return fmt.Sprintf("__pagelet_placeholder_%d", index)
}

// EmitPlaceholder writes the inert stand-in markup for p: a hidden div
// whose id encodes the given placeholder index. It is the default way for
// unloaded pagelets to emit in place and returns p as the one pagelet now
// pending.
//
// TODO(strager): Make inline (<span>) versus block (<div>) configurable.
func EmitPlaceholder(wr io.Writer, p Pagelet, index int) (n int, pending []Pagelet) {
	n, err := fmt.Fprintf(wr, `<div style="display:none;" id="%s"></div>`,
		PlaceholderID(index))
	if err != nil {
		panic(EmitError{n, err})
	}
	return n, []Pagelet{p}
}

// fixupJS replaces one placeholder with captured content on the client.
// Content inserted through innerHTML does not execute embedded scripts,
// so every script element in the parsed fragment is re-created. Only
// element parents have a defined replacement strategy; anything else
// throws instead of dropping the content silently. The script element
// removes itself from the document as the last step.
const fixupJS = `(function () {
function fixScriptElements(root) {
    var scripts = root.querySelectorAll('script');
    scripts = Array.prototype.slice.call(scripts);
    var i;
    for (i = 0; i < scripts.length; ++i) {
        var oldScript = scripts[i];
        var newScript = document.createElement('script');
        if (oldScript.src !== '') {
            newScript.src = oldScript.src;
        }
        newScript.text = oldScript.text;
        if (oldScript.type !== '') {
            newScript.type = oldScript.type;
        }
        oldScript.parentNode.replaceChild(newScript, oldScript);
    }
}

var placeholder = document.getElementById(%s);
var html = %s;

var placeholderParent = placeholder.parentNode;
var replacement;
var container;
switch (placeholderParent.nodeType) {
    case Node.ELEMENT_NODE:
        container = document.createElement(placeholderParent.nodeName);
        container.innerHTML = html;
        fixScriptElements(container);
        replacement = document.createDocumentFragment();
        while (container.firstChild) {
            replacement.appendChild(container.removeChild(container.firstChild));
        }
        break;
    default:
        throw Exception('Not implemented');
}
placeholderParent.replaceChild(replacement, placeholder);

var scripts = document.getElementsByTagName('script');
var script = scripts[scripts.length - 1];
script.parentNode.removeChild(script);
}());`

// EmitFixup renders p's real content into a private buffer and wraps it
// into a single self-executing script element that splices the content
// over the placeholder with the given index in the client's document.
// The two phases stay separate: the buffered EmitInPlace call may reveal
// further placeholders, which come back as the pending list, and only
// then does the captured markup get encoded into a script string literal
// that cannot terminate the script element early.
func EmitFixup(wr io.Writer, p Pagelet, index int, idx IdxFactory) (n int, pending []Pagelet) {
	var buf bytes.Buffer
	_, pending = p.EmitInPlace(&buf, idx)
	var quoted bytes.Buffer
	quoted.WriteByte('"')
	sw := script.StringWriter{Escape: &quoted}
	if _, err := sw.Write(buf.Bytes()); err != nil {
		// content that cannot be encoded must never reach the stream
		panic(EmitError{0, err})
	}
	quoted.WriteByte('"')
	n, err := fmt.Fprintf(wr, "<script>"+fixupJS+"</script>",
		script.Quote(PlaceholderID(index)),
		quoted.String())
	if err != nil {
		panic(EmitError{n, err})
	}
	return n, pending
}
