// internal/game/engine.go
//
// Core game engine for a single word scramble session.
// Responsibilities:
//   - Draw a root word from a WordSource (start and "new game").
//   - Normalize and validate submissions in a fixed order:
//     originality → composability → legitimacy.
//   - Apply exactly one score change per submission and record accepted words.
//
// Notes:
//   - A Session is not safe for concurrent use; callers serialize access
//     (see the store package).
//   - The score is a plain accumulator: it may go negative and is kept
//     across NewGame.
package game

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"lukechampine.com/frand"
)

const (
	// DefaultLanguage is the dictionary language used when none is given.
	DefaultLanguage = "en"
	minWordLength   = 3
)

// ErrCannotStart is returned when no root word can be drawn.
// It marks a configuration problem, not a player error.
var ErrCannotStart = errors.New("game: cannot start")

// Session holds the state of one player's game.
type Session struct {
	ID string

	dict Dictionary
	src  WordSource
	lang string

	root  string
	used  []string // most recent first
	score int
}

// New constructs a session and draws its first root word.
// An empty lang falls back to DefaultLanguage.
func New(src WordSource, dict Dictionary, lang string) (*Session, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	s := &Session{
		ID:   randomID(),
		dict: dict,
		src:  src,
		lang: lang,
	}
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start draws a fresh root word and resets used words and score.
func (s *Session) Start() error {
	root, err := s.draw()
	if err != nil {
		return err
	}
	s.root = root
	s.used = nil
	s.score = 0
	return nil
}

// NewGame clears the used words and draws a new root word.
// The score is carried over. On error the session is left untouched.
func (s *Session) NewGame() error {
	root, err := s.draw()
	if err != nil {
		return err
	}
	s.root = root
	s.used = nil
	return nil
}

func (s *Session) draw() (string, error) {
	if s.src == nil {
		return "", fmt.Errorf("%w: no word source", ErrCannotStart)
	}
	w, err := s.src.RandomWord()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCannotStart, err)
	}
	w = Normalize(w)
	if w == "" {
		return "", fmt.Errorf("%w: empty root word", ErrCannotStart)
	}
	return w, nil
}

// Submit validates a candidate word and applies its score change.
//
// Checks run in order and the first failure wins, so a submission never
// costs more than one penalty:
//   - already used       → -2
//   - not composable     → -3
//   - too short, equal to the root, or unknown to the dictionary → -5
//
// An accepted word scores +10 and is put at the front of the used list.
// Empty input is ignored without any state change.
func (s *Session) Submit(raw string) Outcome {
	word := Normalize(raw)
	if word == "" {
		return Outcome{Status: StatusIgnored, Score: s.score}
	}
	if !s.isOriginal(word) {
		return s.reject(word, ReasonAlreadyUsed, "")
	}
	if !IsPossible(word, s.root) {
		return s.reject(word, ReasonNotComposable, "")
	}
	if cause := s.isReal(word); cause != "" {
		return s.reject(word, ReasonNotARealWord, cause)
	}

	s.score += AcceptReward
	s.used = append([]string{word}, s.used...)
	return Outcome{
		Status: StatusAccepted,
		Word:   word,
		Delta:  AcceptReward,
		Score:  s.score,
	}
}

func (s *Session) reject(word string, reason Reason, cause Cause) Outcome {
	delta := -Penalty(reason)
	s.score += delta
	title, msg := describe(reason, s.root)
	out := Outcome{
		Status:  StatusRejected,
		Word:    word,
		Reason:  reason,
		Cause:   cause,
		Title:   title,
		Message: msg,
		Delta:   delta,
		Score:   s.score,
	}
	if cause == CauseUnknown {
		if sg, ok := s.dict.(Suggester); ok {
			if w, ok := sg.Suggest(word, s.acceptable(word)); ok {
				out.Suggestion = w
			}
		}
	}
	return out
}

// acceptable reports candidates that Submit would accept right now,
// leaving out the rejected word itself.
func (s *Session) acceptable(rejected string) func(string) bool {
	return func(w string) bool {
		return w != rejected &&
			w != s.root &&
			utf8.RuneCountInString(w) >= minWordLength &&
			IsPossible(w, s.root) &&
			s.isOriginal(w)
	}
}

func (s *Session) isOriginal(word string) bool {
	return !lo.Contains(s.used, word)
}

// isReal returns the reason the word is not legitimate, or "" if it is.
func (s *Session) isReal(word string) Cause {
	switch {
	case utf8.RuneCountInString(word) < minWordLength:
		return CauseTooShort
	case word == s.root:
		return CauseRootWord
	case s.dict == nil || !s.dict.IsRecognizedWord(word, s.lang):
		return CauseUnknown
	}
	return ""
}

// IsPossible reports whether word can be spelled from the letters of root,
// using each letter of root at most as many times as it appears there.
func IsPossible(word, root string) bool {
	pool := []rune(root)
	for _, r := range word {
		i := lo.IndexOf(pool, r)
		if i < 0 {
			return false
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return true
}

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Root returns the current root word.
func (s *Session) Root() string { return s.root }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// UsedWords returns a copy of the accepted words, most recent first.
func (s *Session) UsedWords() []string {
	return append([]string(nil), s.used...)
}

// Snapshot returns a display-ready copy of the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:       s.ID,
		RootWord: s.root,
		Language: s.lang,
		UsedWords: lo.Map(s.used, func(w string, _ int) UsedWord {
			return UsedWord{Word: w, Length: utf8.RuneCountInString(w)}
		}),
		Score: s.score,
	}
}

// describe returns the user-facing title and message for a rejection.
func describe(r Reason, root string) (string, string) {
	switch r {
	case ReasonAlreadyUsed:
		return "Word used already",
			fmt.Sprintf("Be more original. You lose %d score points.", Penalty(r))
	case ReasonNotComposable:
		return "Word not possible",
			fmt.Sprintf("You can't spell that word from '%s'! You lose %d score points.", root, Penalty(r))
	case ReasonNotARealWord:
		return "Word not recognized",
			fmt.Sprintf("That word is shorter than %d letters, is the root word itself, or it doesn't exist. You lose %d score points.",
				minWordLength, Penalty(r))
	}
	return "", ""
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	return hex.EncodeToString(frand.Bytes(8))
}
