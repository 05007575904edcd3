// internal/game/types.go
//
// Core type definitions for the word scramble engine.
// Defines:
//   - Status / Reason / Cause: the verdict vocabulary of a submission.
//   - Outcome: what a single submission did to the session.
//   - Snapshot: a display-ready copy of the session state.
//   - Dictionary / WordSource: the collaborators a Session depends on.

package game

// Status is the coarse result of a submission.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusIgnored  Status = "ignored" // empty or whitespace-only input
)

// Reason names the validation check a rejected word failed.
type Reason string

const (
	ReasonAlreadyUsed   Reason = "already_used"
	ReasonNotComposable Reason = "not_composable"
	ReasonNotARealWord  Reason = "not_a_real_word"
)

// Cause narrows down why the legitimacy check failed.
// It is only set together with ReasonNotARealWord.
type Cause string

const (
	CauseTooShort Cause = "too_short"
	CauseRootWord Cause = "root_word"
	CauseUnknown  Cause = "unknown"
)

// Points awarded for an accepted word.
const AcceptReward = 10

// Penalty returns the number of points a rejection costs.
func Penalty(r Reason) int {
	switch r {
	case ReasonAlreadyUsed:
		return 2
	case ReasonNotComposable:
		return 3
	case ReasonNotARealWord:
		return 5
	}
	return 0
}

// Outcome describes the effect of one Submit call.
type Outcome struct {
	Status     Status `json:"status"`
	Word       string `json:"word,omitempty"`       // normalized candidate
	Reason     Reason `json:"reason,omitempty"`     // set when rejected
	Cause      Cause  `json:"cause,omitempty"`      // set for ReasonNotARealWord
	Title      string `json:"title,omitempty"`      // short user-facing heading
	Message    string `json:"message,omitempty"`    // user-facing explanation incl. penalty
	Suggestion string `json:"suggestion,omitempty"` // closest word that would be accepted, if any
	Delta      int    `json:"delta"`                // score change applied
	Score      int    `json:"score"`                // score after the change
}

// UsedWord is an accepted word plus its letter count for display.
type UsedWord struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	ID        string     `json:"id"`
	RootWord  string     `json:"rootWord"`
	Language  string     `json:"language"`
	UsedWords []UsedWord `json:"usedWords"` // most recent first
	Score     int        `json:"score"`
}

// Dictionary answers whether a word is a recognized, correctly spelled word
// in the given language. Implementations must be case-insensitive and must
// report false, not panic, when their backing resource is unavailable.
type Dictionary interface {
	IsRecognizedWord(word, language string) bool
}

// Suggester is optionally implemented by a Dictionary that can propose the
// closest known word for an unrecognized one. Only candidates for which
// keep returns true may be proposed.
type Suggester interface {
	Suggest(word string, keep func(string) bool) (string, bool)
}

// WordSource supplies root words drawn uniformly from a fixed pool.
type WordSource interface {
	RandomWord() (string, error)
}
