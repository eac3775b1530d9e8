// Package envelope encodes instruction/response pairs into the three-turn chat
// text a downstream tokenizer splits on.
package envelope

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/devsynth/internal/domain"
)

// SystemPrompt is the fixed system turn of every envelope.
const SystemPrompt = "You are Lab68Dev Assistant, an AI specialized in software development tasks and technical explanations."

const (
	TagSystem    = "<|system|>"
	TagUser      = "<|user|>"
	TagAssistant = "<|assistant|>"
	TagEnd       = "</s>"
)

// ErrMalformedEnvelope is returned by Parse for text that is not an envelope.
var ErrMalformedEnvelope = errors.New("malformed envelope")

// Record is one line of a dataset file.
type Record struct {
	Text string `json:"text"`
}

// Turns is a parsed envelope.
type Turns struct {
	System    string
	User      string
	Assistant string
}

// Format renders ex as
//
//	<|system|>\n{SystemPrompt}</s>\n<|user|>\n{instruction}</s>\n<|assistant|>\n{output}</s>
//
// with no trailing newline.
func Format(ex domain.GeneratedExample) string {
	var b strings.Builder
	b.Grow(len(SystemPrompt) + len(ex.Instruction) + len(ex.Output) + 64)
	b.WriteString(Prompt(ex.Instruction))
	b.WriteString(ex.Output)
	b.WriteString(TagEnd)
	return b.String()
}

// Prompt is the envelope prefix up to and including the assistant tag line,
// the text a model completes at inference time.
func Prompt(instruction string) string {
	return TagSystem + "\n" + SystemPrompt + TagEnd + "\n" +
		TagUser + "\n" + instruction + TagEnd + "\n" +
		TagAssistant + "\n"
}

// NewRecord wraps the formatted envelope of ex.
func NewRecord(ex domain.GeneratedExample) Record {
	return Record{Text: Format(ex)}
}

// Parse splits text back into its turns. Each opening tag must appear exactly
// once, in system, user, assistant order, the end tag exactly three times, and
// the text must end with the end tag.
func Parse(text string) (Turns, error) {
	for _, tag := range []string{TagSystem, TagUser, TagAssistant} {
		if n := strings.Count(text, tag); n != 1 {
			return Turns{}, fmt.Errorf("%w: %s appears %d times", ErrMalformedEnvelope, tag, n)
		}
	}
	if n := strings.Count(text, TagEnd); n != 3 {
		return Turns{}, fmt.Errorf("%w: %s appears %d times, want 3", ErrMalformedEnvelope, TagEnd, n)
	}

	rest, ok := strings.CutPrefix(text, TagSystem+"\n")
	if !ok {
		return Turns{}, fmt.Errorf("%w: must start with %s", ErrMalformedEnvelope, TagSystem)
	}
	system, rest, ok := strings.Cut(rest, TagEnd+"\n"+TagUser+"\n")
	if !ok {
		return Turns{}, fmt.Errorf("%w: user turn missing or out of order", ErrMalformedEnvelope)
	}
	user, rest, ok := strings.Cut(rest, TagEnd+"\n"+TagAssistant+"\n")
	if !ok {
		return Turns{}, fmt.Errorf("%w: assistant turn missing or out of order", ErrMalformedEnvelope)
	}
	assistant, ok := strings.CutSuffix(rest, TagEnd)
	if !ok {
		return Turns{}, fmt.Errorf("%w: must end with %s", ErrMalformedEnvelope, TagEnd)
	}
	return Turns{System: system, User: user, Assistant: assistant}, nil
}
