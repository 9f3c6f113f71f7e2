package testutil

import (
	"strings"

	"github.com/Talha76/memorize-words/internal/domain"
	"github.com/Talha76/memorize-words/internal/scoring"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestRecord creates a pair record with the given stats
func NewTestRecord(primary, secondary string, correct, wrong int) domain.PairRecord {
	return domain.PairRecord{
		Primary:   primary,
		Secondary: secondary,
		Correct:   correct,
		Wrong:     wrong,
	}
}

// NewOrderedPartitioner creates a partitioner that keeps input order
func NewOrderedPartitioner() *scoring.Partitioner {
	return scoring.NewPartitioner(func(int, func(i, j int)) {})
}

// TextFile returns a plain text upload body
func TextFile(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n"))
}
