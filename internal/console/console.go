// Package console is a terminal front end for a single game session.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/game"
)

// Console renders a session and feeds it lines typed by the player.
type Console struct {
	sess *game.Session
	out  io.Writer
}

// New returns a console writing to out.
func New(sess *game.Session, out io.Writer) *Console {
	return &Console{sess: sess, out: out}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// Loop reads lines until :quit, EOF or an interrupt on an empty line.
func (c *Console) Loop() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mword>\033[0m ",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	defer l.Close()
	c.out = l.Stdout()

	c.Help()
	c.Show()
	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if c.Handle(line) {
			return nil
		}
	}
}

// Handle processes one input line and reports whether the player quit.
func (c *Console) Handle(line string) bool {
	switch strings.TrimSpace(line) {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		c.Help()
		return false
	case ":new":
		if err := c.sess.NewGame(); err != nil {
			log.Error().Err(err).Msg("new game")
			fmt.Fprintln(c.out, "Could not start a new game.")
			return false
		}
		c.Show()
		return false
	}

	out := c.sess.Submit(line)
	switch out.Status {
	case game.StatusIgnored:
		return false
	case game.StatusRejected:
		fmt.Fprintf(c.out, "%s: %s\n", out.Title, out.Message)
		if out.Suggestion != "" {
			fmt.Fprintf(c.out, "Did you mean %q?\n", out.Suggestion)
		}
	case game.StatusAccepted:
		fmt.Fprintf(c.out, "+%d for %q\n", out.Delta, out.Word)
	}
	c.Show()
	return false
}

// Show prints the root word, score and used words.
func (c *Console) Show() {
	snap := c.sess.Snapshot()
	fmt.Fprintf(c.out, "%s  (score %d)\n", strings.ToUpper(snap.RootWord), snap.Score)
	for _, w := range snap.UsedWords {
		fmt.Fprintf(c.out, "  (%d) %s\n", w.Length, w.Word)
	}
}

// Help prints the available commands.
func (c *Console) Help() {
	fmt.Fprintln(c.out, "Make words from the letters of the root word. :new for a new word, :quit to exit.")
}
