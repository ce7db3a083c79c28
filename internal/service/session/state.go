package session

import "github.com/sandevgo/ailean/internal/core"

type Phase int

const (
	PhaseFirstTurn Phase = iota
	PhaseSteady
)

// State belongs to exactly one conversation and is dropped when it ends.
type State struct {
	Equipment core.Equipment

	phase   Phase
	history []core.Turn
}

func NewState(eq core.Equipment) *State {
	return &State{Equipment: eq}
}

func (s *State) Phase() Phase {
	return s.phase
}

func (s *State) IsFirstTurn() bool {
	return s.phase == PhaseFirstTurn
}

// Advance moves the conversation out of its first turn. It never goes back.
func (s *State) Advance() {
	s.phase = PhaseSteady
}

func (s *State) Record(turn core.Turn) {
	s.history = append(s.history, turn)
}

// History returns every answered turn, oldest first.
func (s *State) History() []core.Turn {
	out := make([]core.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Recent returns at most n of the latest turns, oldest first.
func (s *State) Recent(n int) []core.Turn {
	return lastTurns(s.history, n)
}

func lastTurns(turns []core.Turn, n int) []core.Turn {
	if n <= 0 {
		return nil
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]core.Turn, len(turns))
	copy(out, turns)
	return out
}
