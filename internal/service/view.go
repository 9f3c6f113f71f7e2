package service

import (
	"github.com/Talha76/memorize-words/internal/domain"
	"github.com/Talha76/memorize-words/internal/scoring"
	"github.com/Talha76/memorize-words/internal/study"
)

// CardView is the current card as shown to the learner
type CardView struct {
	Primary   string        `json:"primary"`
	Secondary string        `json:"secondary"`
	Correct   int           `json:"correct"`
	Wrong     int           `json:"wrong"`
	Mastery   float64       `json:"mastery"`
	Revealed  bool          `json:"revealed"`
	Answer    domain.Answer `json:"answer,omitempty"`
}

// View is what a front end needs to render one screen
type View struct {
	Phase            study.Phase         `json:"phase"`
	Card             *CardView           `json:"card,omitempty"`
	Index            int                 `json:"index"`
	Total            int                 `json:"total"`
	Remaining        int                 `json:"remaining"`
	IsLastPair       bool                `json:"is_last_pair"`
	StudyingLowScore bool                `json:"studying_low_score"`
	Added            []domain.PairRecord `json:"added"`
	Error            string              `json:"error"`
}

// NewView renders a workspace snapshot
func NewView(w study.Workspace) View {
	v := View{
		Phase:            w.Phase,
		Index:            w.Index,
		Total:            len(w.Active),
		Remaining:        len(w.Deferred),
		IsLastPair:       w.IsLastPair(),
		StudyingLowScore: w.StudyingLowScore,
		Added:            append([]domain.PairRecord{}, w.Added...),
		Error:            w.Error,
	}

	if card, ok := w.Current(); ok && w.Phase == study.PhaseStudy {
		v.Card = &CardView{
			Primary:   card.Record.Primary,
			Secondary: card.Record.Secondary,
			Correct:   card.Record.Correct,
			Wrong:     card.Record.Wrong,
			Mastery:   scoring.Mastery(card.Record),
			Revealed:  card.View.Revealed,
			Answer:    card.View.Answer,
		}
	}

	return v
}
