// Package study holds the flashcard session state machine.
//
// A Workspace is a snapshot value. Every operation returns a new Workspace and
// never mutates the receiver or shares backing arrays with it, so callers can
// install the result atomically.
package study

import "github.com/Talha76/memorize-words/internal/domain"

// Phase is the screen the learner is on
type Phase string

const (
	PhaseUpload          Phase = "upload"
	PhaseStudy           Phase = "study"
	PhaseRemainingPrompt Phase = "remaining_prompt"
	PhaseAddingWords     Phase = "adding_words"
)

// Direction is a navigation direction
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// Workspace is the complete study state of one learner
type Workspace struct {
	Phase            Phase               `json:"phase"`
	Active           []domain.Card       `json:"active"`
	Deferred         []domain.Card       `json:"deferred"`
	Index            int                 `json:"index"`
	StudyingLowScore bool                `json:"studying_low_score"`
	Added            []domain.PairRecord `json:"added"`
	Error            string              `json:"error,omitempty"`
}

// New returns the pre-upload workspace
func New() Workspace {
	return Workspace{Phase: PhaseUpload, StudyingLowScore: true}
}

func (w Workspace) clone() Workspace {
	w.Active = append([]domain.Card(nil), w.Active...)
	w.Deferred = append([]domain.Card(nil), w.Deferred...)
	w.Added = append([]domain.PairRecord(nil), w.Added...)
	return w
}

// Current returns the card at Index, if any
func (w Workspace) Current() (domain.Card, bool) {
	if w.Index < 0 || w.Index >= len(w.Active) {
		return domain.Card{}, false
	}
	return w.Active[w.Index], true
}

// IsLastPair reports whether Index points at the last active card
func (w Workspace) IsLastPair() bool {
	return len(w.Active) > 0 && w.Index == len(w.Active)-1
}

// WithError returns the workspace with the message slot set
func (w Workspace) WithError(message string) Workspace {
	w = w.clone()
	w.Error = message
	return w
}

// Records returns every pair in export order: active pool then deferred pool
func (w Workspace) Records() []domain.PairRecord {
	records := domain.Records(w.Active)
	return append(records, domain.Records(w.Deferred)...)
}

// RecordAnswer applies an answer to the current card.
// A first answer counts and advances; repeating it undoes it; the opposite answer switches it.
func (w Workspace) RecordAnswer(correct bool) Workspace {
	if w.Phase != PhaseStudy {
		return w
	}
	if _, ok := w.Current(); !ok {
		return w
	}

	w = w.clone()
	card := &w.Active[w.Index]
	answer := domain.AnswerFor(correct)

	switch card.View.Answer {
	case domain.AnswerNone:
		bump(&card.Record, answer, 1)
		card.View.Answer = answer
		if w.Index < len(w.Active)-1 {
			w.Index++
			w.Active[w.Index].View.Revealed = false
		}
	case answer:
		bump(&card.Record, answer, -1)
		card.View.Answer = domain.AnswerNone
	default:
		bump(&card.Record, card.View.Answer, -1)
		bump(&card.Record, answer, 1)
		card.View.Answer = answer
	}

	return w
}

func bump(r *domain.PairRecord, answer domain.Answer, delta int) {
	switch answer {
	case domain.AnswerCorrect:
		r.Correct = max(r.Correct+delta, 0)
	case domain.AnswerWrong:
		r.Wrong = max(r.Wrong+delta, 0)
	}
}

// ToggleReveal flips the reveal state of the current card only
func (w Workspace) ToggleReveal() Workspace {
	if w.Phase != PhaseStudy {
		return w
	}
	if _, ok := w.Current(); !ok {
		return w
	}

	w = w.clone()
	w.Active[w.Index].View.Revealed = !w.Active[w.Index].View.Revealed
	return w
}

// Navigate moves one card back or forward. It is a no-op at either end.
func (w Workspace) Navigate(dir Direction) Workspace {
	if w.Phase != PhaseStudy {
		return w
	}

	next := w.Index
	switch {
	case dir == DirectionNext && w.Index < len(w.Active)-1:
		next++
	case dir == DirectionPrev && w.Index > 0:
		next--
	default:
		return w
	}

	w = w.clone()
	w.Index = next
	w.Active[w.Index].View.Revealed = false
	return w
}
