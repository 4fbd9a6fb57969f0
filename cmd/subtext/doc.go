// Command subtext fetches video caption transcripts through a tiered chain
// of upstream sources, optionally translates them through a chat-completion
// model with a terminology dictionary, and supports a human review
// round-trip before rendering the result to text, SRT, VTT or JSON.
package main
