// Progressive HTML delivery with pagelets – placeholders now, fixups later!
// Copyright (C) 2026 strager
//
// Package pagelets delivers an HTML document progressively over a single
// response stream. The page shell goes out immediately; content that is
// not ready yet leaves a hidden placeholder element in the stream and is
// filled in later by a fixup, a self-executing script block that replaces
// the placeholder in the already delivered document. The client never
// reloads and never polls.
//
// A Pagelet is an independently resolvable piece of the document. Literal
// holds fixed content and is always loaded. Triggered wraps another
// pagelet and stands in the output as a placeholder until some external
// event calls SetLoaded. Multi groups pagelets into a sequence. Loaded
// content revealed by a fixup may itself contain further placeholders, so
// resolution can cascade over several rounds.
//
// The Writer keeps the bookkeeping for one rendering session: it assigns
// every placeholder a unique index in first-seen order and tracks the
// pending set, i.e. the pagelets whose placeholder went out but whose
// fixup did not yet. EmitInPlace emits a pagelet tree, EmitFixups runs one
// resolution round over the pagelets loaded by now, and Finish fails hard
// when placeholders would stay broken in the client's document forever.
//
// Waiting is the caller's business. Nothing in this package blocks; one
// calls EmitFixups whenever a readiness signal arrived and flushes the
// transport whenever the client is supposed to see progress. Subpackage
// web wires a session to net/http, subpackage script keeps captured
// content from breaking out of the fixup's script element.
package pagelets
