package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/internal/service/retrieval"
	"github.com/sandevgo/ailean/pkg/conv"
	"github.com/sandevgo/ailean/pkg/log"
)

const (
	inputPrompt = "> "
	leaveNotice = "Returning to main menu..."
)

// Input reads one line of user input. Implementations return core.ErrInterrupt
// on Ctrl+C and io.EOF when input is closed.
type Input interface {
	ReadLine(prompt string) (string, error)
}

type Config struct {
	Model         string
	Timeout       time.Duration
	HistoryWindow int

	// TurnContext scopes one gateway call. Cancelling the returned context
	// aborts the turn and ends the session. Defaults to catching SIGINT for
	// the duration of the call.
	TurnContext func(ctx context.Context) (context.Context, context.CancelFunc)
}

func interruptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

// Session runs manual-grounded conversations, one at a time.
type Session struct {
	store    core.ManualStore
	gateway  core.CompletionGateway
	composer *Composer
	cfg      Config
	out      io.Writer
	now      func() time.Time
}

func New(store core.ManualStore, gateway core.CompletionGateway, cfg Config, out io.Writer) *Session {
	s := &Session{
		store:    store,
		gateway:  gateway,
		composer: NewComposer(cfg.HistoryWindow),
		cfg:      cfg,
		out:      out,
		now:      time.Now,
	}
	s.composer.Now = func() time.Time { return s.now() }
	if s.cfg.TurnContext == nil {
		s.cfg.TurnContext = interruptContext
	}
	return s
}

// Run chats about eq until the user types exit, interrupts, or closes input.
// A missing manual is returned as *core.NotFoundError before anything is read.
func (s *Session) Run(ctx context.Context, eq core.Equipment, in Input) error {
	manual, err := s.store.GetManual(ctx, eq.ID)
	if err != nil {
		return fmt.Errorf("cannot start session for %s: %w", eq.Name, err)
	}

	ctx = log.WithFields(ctx, map[string]string{
		"session":   uuid.NewString(),
		"equipment": eq.Name,
	})
	logger := log.FromCtx(ctx)
	logger.Info().Int("manual_chars", len(manual)).Msg("session started")

	state := NewState(eq)
	fmt.Fprintf(s.out, "\nI'm %s, your %s Maintenance Bot! How can I help? (e.g., 'My equipment won't work') Or, type 'exit' to return to the main menu.\n",
		core.BotName, eq.Name)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := in.ReadLine(inputPrompt)
		if errors.Is(err, core.ErrInterrupt) || errors.Is(err, io.EOF) {
			fmt.Fprintf(s.out, "\n%s\n", leaveNotice)
			logger.Info().Int("turns", len(state.History())).Msg("session interrupted")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		reply, done := s.Handle(ctx, state, manual, line)
		if done {
			fmt.Fprintf(s.out, "\n%s\n", reply)
			logger.Info().Int("turns", len(state.History())).Msg("session ended")
			return nil
		}
		fmt.Fprintf(s.out, "\n%s\n\n", reply)
	}
}

// Handle processes one line of input against state and returns the text to
// show. done reports that the user asked to leave or interrupted the turn.
func (s *Session) Handle(ctx context.Context, state *State, manual, raw string) (reply string, done bool) {
	logger := log.FromCtx(ctx)
	u := Classify(raw)
	logger.Debug().Stringer("kind", u.Kind).Msg("input classified")

	switch u.Kind {
	case KindExit:
		return leaveNotice, true
	case KindEmpty:
		logger.Debug().Err(core.ErrEmptyInput).Msg("re-prompting")
		return fmt.Sprintf("Please enter an issue related to %s.", state.Equipment.Name), false
	case KindGreeting:
		return greetingReply(s.now(), state.Equipment.Name), false
	}

	excerpt := retrieval.Extract(u.Text, manual)
	logger.Debug().Stringer("branch", excerpt.Branch).Int("excerpt_chars", len(excerpt.Text)).Msg("excerpt selected")

	prompt := s.composer.Compose(PromptInput{
		Utterance:     u.Text,
		Excerpt:       excerpt.Text,
		EquipmentName: state.Equipment.Name,
		FirstTurn:     state.IsFirstTurn(),
		History:       state.History(),
	})

	turnCtx, stop := s.cfg.TurnContext(ctx)
	defer stop()

	start := s.now()
	text, err := s.gateway.Generate(turnCtx, core.GenerationRequest{
		Model:   s.cfg.Model,
		Prompt:  prompt,
		Timeout: s.cfg.Timeout,
	})
	if err != nil && turnCtx.Err() != nil && ctx.Err() == nil {
		logger.Info().Err(err).Msg("turn interrupted")
		return leaveNotice, true
	}
	state.Advance()

	if err != nil {
		logger.Error().Err(err).Msg("turn failed")
		return apology(err), false
	}

	state.Record(core.Turn{User: u.Text, Reply: text})
	logger.Info().Dur("elapsed", s.now().Sub(start)).Int("reply_chars", len(text)).Msg("turn answered")
	if rendered := conv.MarkdownToText(text); rendered != "" {
		return rendered, false
	}
	return text, false
}

func apology(err error) string {
	return fmt.Sprintf("Sorry, I couldn't get an answer just now (%v). Please try asking again.", err)
}
