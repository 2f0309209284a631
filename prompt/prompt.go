package prompt

import (
	"fmt"
	"strings"

	"stackwalls-backend/history"
)

// Policy is the fixed per-variant template: instructional text plus
// the rules for folding references, conversation window, and question
// into one instruction block. Variants differ only in these fields,
// never in control flow.
type Policy struct {
	ID   string
	Role string // ends with a blank line

	ConversationHeader string // "" omits the header line
	ReferenceHeader    string
	QuestionHeader     string
	Instructions       []string // rendered as "- ..." under "Instructions:"
	Footer             string

	SpeakerLabel string // assistant label in conversation lines
	Window       int    // history turns folded into the prompt

	// Placeholder replaces an empty reference block for variants that
	// proceed without references.
	Placeholder string

	// RequireRefs refuses (with Refusal) when extraction yields zero
	// reference texts.
	RequireRefs bool
	Refusal     string

	// Generator fallbacks: ErrFallback on provider failure,
	// EmptyFallback on empty model output.
	ErrFallback   string
	EmptyFallback string
}

// JoinRefs concatenates reference texts with blank-line separators and
// prefix-truncates the result to maxChars. No sentence-boundary
// awareness; at or under the limit passes through unmodified.
func JoinRefs(refs []string, maxChars int) string {
	joined := strings.Join(refs, "\n\n")
	if maxChars > 0 && len(joined) > maxChars {
		joined = joined[:maxChars]
	}
	return joined
}

// Build assembles the instruction block. Pure: same inputs, same
// prompt.
func Build(p Policy, turns []history.Turn, refs []string, question string, maxChars int) string {
	refText := JoinRefs(refs, maxChars)
	if refText == "" {
		refText = p.Placeholder
	}

	var b strings.Builder
	b.WriteString(p.Role)
	if p.ConversationHeader != "" {
		b.WriteString(p.ConversationHeader)
		b.WriteString("\n")
	}
	for _, t := range turns {
		fmt.Fprintf(&b, "User: %s\n%s: %s\n", t.Question, p.SpeakerLabel, t.Answer)
	}
	b.WriteString("\n")
	b.WriteString(p.ReferenceHeader)
	b.WriteString("\n")
	b.WriteString(refText)
	b.WriteString("\n\n")
	b.WriteString(p.QuestionHeader)
	b.WriteString("\n")
	b.WriteString(question)
	b.WriteString("\n\n")
	if len(p.Instructions) > 0 {
		b.WriteString("Instructions:\n")
		for _, line := range p.Instructions {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if p.Footer != "" {
		b.WriteString(p.Footer)
		b.WriteString("\n")
	}
	return b.String()
}
