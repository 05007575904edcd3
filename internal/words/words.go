// internal/words/words.go
//
// Root word pool for the game engine.
//
// Responsibilities:
//   - Load the pool once at startup, from a file (WORDS_START_FILE) or the
//     embedded assets/start.txt.
//   - Pick root words uniformly at random.
//   - Derive the shared "word of the day" for daily games.
//
// Constraints:
//   • Entries are trimmed and lowercased; blanks, comments, duplicates and
//     entries containing non-letters are dropped.
//   • An empty pool is a fatal configuration error (ErrEmptyPool).
//   • A Pool is immutable after loading and safe for concurrent use.

package words

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrEmptyPool is returned when no usable root word could be loaded.
var ErrEmptyPool = errors.New("words: pool is empty")

// Pool is an immutable list of candidate root words.
type Pool struct {
	words []string
}

// Load reads the pool from path, or from the embedded start list if path is "".
func Load(path string) (*Pool, error) {
	var (
		list []string
		err  error
	)
	if path != "" {
		list, err = readWordFile(path)
	} else {
		list, err = assets.StartList()
	}
	if err != nil {
		return nil, fmt.Errorf("words: load pool: %w", err)
	}
	return FromList(list)
}

// FromList builds a pool from an in-memory list.
func FromList(list []string) (*Pool, error) {
	clean := lo.Uniq(lo.FilterMap(list, func(w string, _ int) (string, bool) {
		w = game.Normalize(w)
		return w, w != "" && isWord(w)
	}))
	if len(clean) == 0 {
		return nil, ErrEmptyPool
	}
	return &Pool{words: clean}, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadWords(f)
}

// RandomWord returns a uniformly random word from the pool.
func (p *Pool) RandomWord() (string, error) {
	if p == nil || len(p.words) == 0 {
		return "", ErrEmptyPool
	}
	return p.words[frand.Intn(len(p.words))], nil
}

// Daily returns a source that always yields the word of the day for t.
// Every caller using the same salt gets the same word on the same UTC date.
func (p *Pool) Daily(salt string, t time.Time) (Fixed, error) {
	if p == nil || len(p.words) == 0 {
		return "", ErrEmptyPool
	}
	return Fixed(p.words[daily.WordIndex(t, salt, len(p.words))]), nil
}

// Len reports the number of words in the pool.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.words)
}

// contains reports whether w (after normalization) is in the pool.
func (p *Pool) contains(w string) bool {
	return p != nil && lo.Contains(p.words, game.Normalize(w))
}

// Fixed is a word source that always returns the same word.
type Fixed string

// RandomWord returns f, or ErrEmptyPool if f is empty.
func (f Fixed) RandomWord() (string, error) {
	if f == "" {
		return "", ErrEmptyPool
	}
	return string(f), nil
}

// isWord reports whether s consists only of letters.
func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
