// internal/dictionary/wordlist.go
//
// In-memory dictionary backed by a flat word list.
// Used by default (embedded assets/dictionary.txt) or with DICTIONARY_FILE.

package dictionary

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/samber/lo"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/game"
)

// WordList recognizes exactly the words it was built from, in one language.
// It is read-only after construction and safe for concurrent use.
type WordList struct {
	lang  string
	set   map[string]struct{}
	words []string // sorted, for deterministic suggestions
}

// NewWordList builds a dictionary for lang from list.
func NewWordList(lang string, list []string) *WordList {
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		if w = game.Normalize(w); w != "" {
			set[w] = struct{}{}
		}
	}
	words := lo.Keys(set)
	sort.Strings(words)
	return &WordList{lang: strings.ToLower(lang), set: set, words: words}
}

// LoadWordList reads a word list from path, or the embedded dictionary if path is "".
func LoadWordList(lang, path string) (*WordList, error) {
	list, err := readList(path)
	if err != nil {
		return nil, err
	}
	return NewWordList(lang, list), nil
}

func readList(path string) ([]string, error) {
	if path == "" {
		list, err := assets.DictionaryList()
		if err != nil {
			return nil, fmt.Errorf("dictionary: read embedded list: %w", err)
		}
		return list, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()
	list, err := assets.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read %s: %w", path, err)
	}
	return list, nil
}

// IsRecognizedWord reports whether word is in the list, ignoring case.
// Words in any other language are never recognized.
func (d *WordList) IsRecognizedWord(word, language string) bool {
	if d == nil || !strings.EqualFold(language, d.lang) {
		return false
	}
	_, ok := d.set[game.Normalize(word)]
	return ok
}

// Len reports the number of distinct words.
func (d *WordList) Len() int { return len(d.words) }

// Suggest returns the closest known word to word, if one is near enough.
// Candidates rejected by keep are skipped; a nil keep accepts all.
// Ties go to the alphabetically first candidate.
func (d *WordList) Suggest(word string, keep func(string) bool) (string, bool) {
	word = game.Normalize(word)
	if d == nil || word == "" {
		return "", false
	}
	limit := distanceLimit(len([]rune(word)))
	best, bestDist := "", limit+1
	for _, cand := range d.words {
		if keep != nil && !keep(cand) {
			continue
		}
		dist := levenshtein.ComputeDistance(word, cand)
		if dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, best != ""
}

// distanceLimit is the largest edit distance still worth suggesting.
func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
