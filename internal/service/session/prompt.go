package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/ailean/internal/core"
)

const DefaultHistoryWindow = 3

const constraints = `Respond to the user conversationally, in as few sentences as possible, and be straightforward.
Explain the fix in a natural tone without numbered lists.
Never tell the user to check or reference the manual. Your job is to replace them having to check it.
Do not assume a model or variant of the equipment the user has not mentioned.`

type PromptInput struct {
	Utterance     string
	Excerpt       string
	EquipmentName string
	FirstTurn     bool
	History       []core.Turn
}

// Composer builds the single prompt sent to the completion gateway.
type Composer struct {
	HistoryWindow int
	Now           func() time.Time
}

func NewComposer(historyWindow int) *Composer {
	return &Composer{
		HistoryWindow: historyWindow,
		Now:           time.Now,
	}
}

func (c *Composer) Compose(in PromptInput) string {
	var sb strings.Builder

	if in.FirstTurn {
		fmt.Fprintf(&sb, "Open your reply with a short %q greeting.\n\n", TimeOfDayGreeting(c.now()))
	}

	fmt.Fprintf(&sb, "You are %s, a friendly maintenance expert for the %s.\n\n", core.BotName, in.EquipmentName)

	sb.WriteString("MANUAL EXCERPT:\n")
	sb.WriteString(in.Excerpt)
	sb.WriteString("\n\n")

	if recent := lastTurns(in.History, c.HistoryWindow); len(recent) > 0 {
		sb.WriteString("CONVERSATION SO FAR:\n")
		for _, turn := range recent {
			fmt.Fprintf(&sb, "User: %s\nBot: %s\n", turn.User, turn.Reply)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "User issue: %s\n\n", in.Utterance)
	sb.WriteString(constraints)

	if in.FirstTurn {
		sb.WriteString("\nClose with a brief word of encouragement.")
	}
	return sb.String()
}

func (c *Composer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
