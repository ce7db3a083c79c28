package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/sandevgo/ailean/internal/core"
)

// Console is line input with history and Ctrl+C handling.
type Console struct {
	rl *readline.Instance
}

func NewConsole(historyFile string) (*Console, error) {
	if err := os.MkdirAll(filepath.Dir(historyFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &Console{rl: rl}, nil
}

// ReadLine maps readline's interrupt to core.ErrInterrupt; EOF stays io.EOF.
func (c *Console) ReadLine(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", core.ErrInterrupt
	}
	return line, err
}

func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

func (c *Console) Close() error {
	if c.rl != nil {
		return c.rl.Close()
	}
	return nil
}
