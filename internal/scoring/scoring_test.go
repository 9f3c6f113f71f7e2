package scoring

import (
	"fmt"
	"testing"

	"github.com/Talha76/memorize-words/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noShuffle(int, func(i, j int)) {}

func reverse(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestMastery(t *testing.T) {
	tests := []struct {
		name     string
		record   domain.PairRecord
		expected float64
	}{
		{name: "never answered", record: domain.PairRecord{}, expected: 0},
		{name: "all wrong", record: domain.PairRecord{Wrong: 4}, expected: 0},
		{name: "half", record: domain.PairRecord{Correct: 5, Wrong: 5}, expected: 50},
		{name: "all correct", record: domain.PairRecord{Correct: 3}, expected: 100},
		{name: "eighty", record: domain.PairRecord{Correct: 8, Wrong: 2}, expected: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Mastery(tt.record), 1e-9)
		})
	}
}

func TestMastery_Bounds(t *testing.T) {
	for correct := 0; correct <= 20; correct++ {
		for wrong := 0; wrong <= 20; wrong++ {
			r := domain.PairRecord{Correct: correct, Wrong: wrong}
			m := Mastery(r)
			assert.GreaterOrEqual(t, m, 0.0)
			assert.LessOrEqual(t, m, 100.0)
			if r.Attempts() == 0 {
				assert.Zero(t, m)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		record   domain.PairRecord
		expected Pool
	}{
		{name: "80 percent over 10 attempts", record: domain.PairRecord{Correct: 8, Wrong: 2}, expected: PoolHigh},
		{name: "70 percent over 10 attempts", record: domain.PairRecord{Correct: 7, Wrong: 3}, expected: PoolLow},
		{name: "100 percent over 9 attempts", record: domain.PairRecord{Correct: 9}, expected: PoolLow},
		{name: "never answered", record: domain.PairRecord{}, expected: PoolLow},
		{name: "many attempts all correct", record: domain.PairRecord{Correct: 40}, expected: PoolHigh},
		{name: "50 percent over 10 attempts", record: domain.PairRecord{Correct: 5, Wrong: 5}, expected: PoolLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.record))
		})
	}
}

func TestPartitioner_Partition(t *testing.T) {
	cards := domain.Cards([]domain.PairRecord{
		{Primary: "a", Secondary: "b", Correct: 5, Wrong: 5},
		{Primary: "c", Secondary: "d", Correct: 9, Wrong: 1},
		{Primary: "e", Secondary: "f"},
		{Primary: "g", Secondary: "h", Correct: 20, Wrong: 2},
	})

	low, high := NewPartitioner(noShuffle).Partition(cards)

	assert.Equal(t, []string{"a", "e"}, primaries(low))
	assert.Equal(t, []string{"c", "g"}, primaries(high))
}

func TestPartitioner_PartitionShufflesEachPool(t *testing.T) {
	cards := domain.Cards([]domain.PairRecord{
		{Primary: "a", Secondary: "1"},
		{Primary: "b", Secondary: "2", Correct: 10},
		{Primary: "c", Secondary: "3"},
		{Primary: "d", Secondary: "4", Correct: 10},
		{Primary: "e", Secondary: "5"},
	})

	low, high := NewPartitioner(reverse).Partition(cards)

	assert.Equal(t, []string{"e", "c", "a"}, primaries(low))
	assert.Equal(t, []string{"d", "b"}, primaries(high))
}

func TestPartitioner_TotalAndDisjoint(t *testing.T) {
	var records []domain.PairRecord
	for i := 0; i < 60; i++ {
		records = append(records, domain.PairRecord{
			Primary:   fmt.Sprintf("p%d", i),
			Secondary: fmt.Sprintf("s%d", i),
			Correct:   i % 13,
			Wrong:     i % 4,
		})
	}

	low, high := NewPartitioner(nil).Partition(domain.Cards(records))

	require.Equal(t, len(records), len(low)+len(high))

	seen := make(map[string]int)
	for _, c := range low {
		assert.Equal(t, PoolLow, Classify(c.Record))
		seen[c.Record.Primary]++
	}
	for _, c := range high {
		assert.Equal(t, PoolHigh, Classify(c.Record))
		seen[c.Record.Primary]++
	}
	for _, r := range records {
		assert.Equal(t, 1, seen[r.Primary], "pair %s", r.Primary)
	}
}

func TestPartitioner_DoesNotAliasInput(t *testing.T) {
	cards := domain.Cards([]domain.PairRecord{
		{Primary: "a", Secondary: "1"},
		{Primary: "b", Secondary: "2"},
	})

	low, _ := NewPartitioner(reverse).Partition(cards)
	low[0].Record.Correct = 99

	assert.Equal(t, []string{"a", "b"}, primaries(cards))
	assert.Zero(t, cards[1].Record.Correct)
}

func TestPartitioner_Empty(t *testing.T) {
	low, high := NewPartitioner(nil).Partition(nil)
	assert.Empty(t, low)
	assert.Empty(t, high)
}

func TestExampleFileLandsInLowPool(t *testing.T) {
	cards := domain.Cards([]domain.PairRecord{
		{Primary: "a", Secondary: "b", Correct: 5, Wrong: 5},
		{Primary: "c", Secondary: "d"},
	})

	assert.InDelta(t, 50.0, Mastery(cards[0].Record), 1e-9)
	assert.Equal(t, 10, cards[0].Record.Attempts())

	low, high := NewPartitioner(nil).Partition(cards)
	assert.Len(t, low, 2)
	assert.Empty(t, high)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]domain.PairRecord{
		{Primary: "a", Secondary: "b", Correct: 8, Wrong: 2},
		{Primary: "c", Secondary: "d", Correct: 1, Wrong: 3},
		{Primary: "e", Secondary: "f"},
	})

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Low)
	assert.Equal(t, 1, s.High)
	assert.Equal(t, 14, s.Attempts)
	assert.Equal(t, 9, s.Correct)
	assert.Equal(t, 5, s.Wrong)
	assert.InDelta(t, 9.0/14.0*100, s.OverallAccuracy, 1e-9)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func primaries(cards []domain.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Record.Primary)
	}
	return out
}
