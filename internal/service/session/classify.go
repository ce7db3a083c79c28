package session

import "strings"

type Kind int

const (
	KindQuestion Kind = iota
	KindExit
	KindEmpty
	KindGreeting
)

func (k Kind) String() string {
	switch k {
	case KindExit:
		return "exit"
	case KindEmpty:
		return "empty"
	case KindGreeting:
		return "greeting"
	default:
		return "question"
	}
}

const exitCommand = "exit"

// Exact matches only: "hello, my rifle is jammed" is a question.
var greetings = map[string]struct{}{
	"good morning":   {},
	"good afternoon": {},
	"good evening":   {},
	"hello":          {},
	"hi":             {},
}

// Utterance is classified user input. Text is trimmed and lowercased.
type Utterance struct {
	Kind Kind
	Text string
}

func Classify(raw string) Utterance {
	text := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case text == exitCommand:
		return Utterance{Kind: KindExit, Text: text}
	case text == "":
		return Utterance{Kind: KindEmpty}
	}
	if _, ok := greetings[text]; ok {
		return Utterance{Kind: KindGreeting, Text: text}
	}
	return Utterance{Kind: KindQuestion, Text: text}
}
