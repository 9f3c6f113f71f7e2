package domain

import "strings"

// PairRecord is the persisted part of a word pair
type PairRecord struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Correct   int    `json:"correct"`
	Wrong     int    `json:"wrong"`
}

// NewPairRecord creates a record with zero stats from untrimmed texts
func NewPairRecord(primary, secondary string) PairRecord {
	return PairRecord{
		Primary:   strings.TrimSpace(primary),
		Secondary: strings.TrimSpace(secondary),
	}
}

// Attempts returns the lifetime number of answers
func (r PairRecord) Attempts() int {
	return r.Correct + r.Wrong
}

// Valid reports whether both texts are non-empty after trimming
func (r PairRecord) Valid() bool {
	return strings.TrimSpace(r.Primary) != "" && strings.TrimSpace(r.Secondary) != ""
}

// SameText reports whether both records carry exactly the same pair of texts
func (r PairRecord) SameText(primary, secondary string) bool {
	return r.Primary == primary && r.Secondary == secondary
}

// Answer is the answer given to a card during the current session
type Answer string

const (
	AnswerNone    Answer = ""
	AnswerCorrect Answer = "correct"
	AnswerWrong   Answer = "wrong"
)

// AnswerFor maps a correct/wrong flag to an Answer
func AnswerFor(correct bool) Answer {
	if correct {
		return AnswerCorrect
	}
	return AnswerWrong
}

// SessionView holds per-session state that is never exported
type SessionView struct {
	Revealed bool   `json:"revealed"`
	Answer   Answer `json:"answer,omitempty"`
}

// Card combines a record with its session view
type Card struct {
	Record PairRecord  `json:"record"`
	View   SessionView `json:"view"`
}

// NewCard wraps a record in a fresh session view
func NewCard(record PairRecord) Card {
	return Card{Record: record}
}

// Records extracts the persisted records from cards, keeping order
func Records(cards []Card) []PairRecord {
	records := make([]PairRecord, 0, len(cards))
	for _, c := range cards {
		records = append(records, c.Record)
	}
	return records
}

// Cards wraps records in fresh cards, keeping order
func Cards(records []PairRecord) []Card {
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, NewCard(r))
	}
	return cards
}
