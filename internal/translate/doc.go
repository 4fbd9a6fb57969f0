// Package translate implements the batched translation protocol: one grouped
// chat-completion request per segment list, permissive response parsing, and
// terminology enforcement as a post-process. The output always has the same
// length and order as the input.
package translate
