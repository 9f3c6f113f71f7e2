package study

import (
	"github.com/Talha76/memorize-words/internal/domain"
	"github.com/Talha76/memorize-words/internal/scoring"
)

// Load starts studying freshly parsed records: low score pool first
func (w Workspace) Load(records []domain.PairRecord, p *scoring.Partitioner) Workspace {
	low, high := p.Partition(domain.Cards(records))

	return Workspace{
		Phase:            PhaseStudy,
		Active:           low,
		Deferred:         high,
		StudyingLowScore: true,
		Added:            []domain.PairRecord{},
	}.settle()
}

// settle moves an empty study queue to the next screen that has something to offer
func (w Workspace) settle() Workspace {
	if w.Phase != PhaseStudy || len(w.Active) > 0 {
		return w
	}
	if w.StudyingLowScore && len(w.Deferred) > 0 {
		w.Phase = PhaseRemainingPrompt
		return w
	}
	w.Phase = PhaseAddingWords
	return w
}

// Finish is invoked on the last card. It offers the remaining pool after the
// low score pool, and goes to add-words mode otherwise.
func (w Workspace) Finish() Workspace {
	if w.Phase != PhaseStudy || !w.IsLastPair() {
		return w
	}

	w = w.clone()
	if w.StudyingLowScore {
		w.Phase = PhaseRemainingPrompt
	} else {
		w.Phase = PhaseAddingWords
	}
	return w
}

// PracticeRemaining promotes the deferred pool to the study queue
func (w Workspace) PracticeRemaining() Workspace {
	if w.Phase != PhaseRemainingPrompt {
		return w
	}

	// session answers start over on both pools
	w = w.clone()
	w.Active, w.Deferred = freshCards(w.Deferred), freshCards(w.Active)
	w.Index = 0
	w.StudyingLowScore = false

	if len(w.Active) == 0 {
		w.Phase = PhaseAddingWords
	} else {
		w.Phase = PhaseStudy
	}
	return w
}

// AddWords switches to add-words mode
func (w Workspace) AddWords() Workspace {
	if w.Phase == PhaseUpload {
		return w
	}

	w = w.clone()
	w.Phase = PhaseAddingWords
	return w
}

// StartNewSession re-partitions every pair and clears all session state
func (w Workspace) StartNewSession(p *scoring.Partitioner) Workspace {
	if w.Phase == PhaseUpload {
		return w
	}

	cards := append(freshCards(w.Active), freshCards(w.Deferred)...)
	low, high := p.Partition(cards)

	return Workspace{
		Phase:            PhaseStudy,
		Active:           low,
		Deferred:         high,
		StudyingLowScore: true,
		Added:            append([]domain.PairRecord{}, w.Added...),
	}.settle()
}

// UploadNew discards everything and returns to the upload screen
func (w Workspace) UploadNew() Workspace {
	return New()
}

// AddPair appends a manually entered pair to the study queue and the added log
func (w Workspace) AddPair(record domain.PairRecord) Workspace {
	if w.Phase != PhaseAddingWords {
		return w
	}

	w = w.clone()
	w.Active = append(w.Active, domain.NewCard(record))
	w.Added = append(w.Added, record)
	w.Error = ""
	return w
}

// DeletePair removes every pair with exactly these texts from the study queue and the added log
func (w Workspace) DeletePair(primary, secondary string) Workspace {
	active := make([]domain.Card, 0, len(w.Active))
	for _, c := range w.Active {
		if !c.Record.SameText(primary, secondary) {
			active = append(active, c)
		}
	}

	added := make([]domain.PairRecord, 0, len(w.Added))
	for _, r := range w.Added {
		if !r.SameText(primary, secondary) {
			added = append(added, r)
		}
	}

	w = w.clone()
	w.Active = active
	w.Added = added
	if w.Index >= len(w.Active) {
		w.Index = max(len(w.Active)-1, 0)
	}
	return w
}

// freshCards copies cards with their session view reset
func freshCards(cards []domain.Card) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.NewCard(c.Record))
	}
	return out
}
