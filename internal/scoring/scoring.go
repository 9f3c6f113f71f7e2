// Package scoring computes mastery and splits cards into the low and high score pools.
package scoring

import (
	"math/rand/v2"

	"github.com/Talha76/memorize-words/internal/domain"
)

// Pool boundaries
const (
	MasteryThreshold = 80.0
	MinAttempts      = 10
)

// Pool identifies one of the two study pools
type Pool string

const (
	PoolLow  Pool = "low"
	PoolHigh Pool = "high"
)

// ShuffleFunc permutes n elements using swap
type ShuffleFunc func(n int, swap func(i, j int))

// Mastery returns the percentage of correct answers, 0 when never answered
func Mastery(r domain.PairRecord) float64 {
	total := r.Attempts()
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total) * 100
}

// Classify returns the pool a record belongs to.
// A record is high score only with mastery >= 80 over at least 10 attempts.
func Classify(r domain.PairRecord) Pool {
	if Mastery(r) < MasteryThreshold || r.Attempts() < MinAttempts {
		return PoolLow
	}
	return PoolHigh
}

// Partitioner splits cards into pools and shuffles each pool
type Partitioner struct {
	shuffle ShuffleFunc
}

// NewPartitioner creates a partitioner. A nil shuffle uses a uniform random shuffle.
func NewPartitioner(shuffle ShuffleFunc) *Partitioner {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	return &Partitioner{shuffle: shuffle}
}

// Partition returns new low and high pools. Every input card lands in exactly one pool.
func (p *Partitioner) Partition(cards []domain.Card) (low, high []domain.Card) {
	low = make([]domain.Card, 0, len(cards))
	high = make([]domain.Card, 0)

	for _, c := range cards {
		if Classify(c.Record) == PoolHigh {
			high = append(high, c)
		} else {
			low = append(low, c)
		}
	}

	p.shuffle(len(low), func(i, j int) { low[i], low[j] = low[j], low[i] })
	p.shuffle(len(high), func(i, j int) { high[i], high[j] = high[j], high[i] })

	return low, high
}

// Summary describes a collection of records
type Summary struct {
	Total           int     `json:"total"`
	Low             int     `json:"low"`
	High            int     `json:"high"`
	Attempts        int     `json:"attempts"`
	Correct         int     `json:"correct"`
	Wrong           int     `json:"wrong"`
	OverallAccuracy float64 `json:"overall_accuracy"`
}

// Summarize counts pool sizes and answers
func Summarize(records []domain.PairRecord) Summary {
	var s Summary
	for _, r := range records {
		s.Total++
		s.Correct += r.Correct
		s.Wrong += r.Wrong
		if Classify(r) == PoolHigh {
			s.High++
		} else {
			s.Low++
		}
	}
	s.Attempts = s.Correct + s.Wrong
	if s.Attempts > 0 {
		s.OverallAccuracy = float64(s.Correct) / float64(s.Attempts) * 100
	}
	return s
}
