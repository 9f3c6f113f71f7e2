// Package wordfile reads and writes the line-oriented word pair format:
//
//	[<correct>,<wrong>] <primary> = <secondary>
//
// The stats bracket is optional on input and always written on output.
package wordfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Talha76/memorize-words/internal/domain"
)

// FileName and MIMEType describe the exported file
const (
	FileName = "word_pairs.txt"
	MIMEType = "text/plain"
)

var (
	statsRx       = regexp.MustCompile(`\[(\d+),(\d+)\]`)
	statsPrefixRx = regexp.MustCompile(`\[\d+,\d+\]\s*`)
)

// Parse converts text into records. Blank lines are skipped.
// Nothing is returned on failure.
func Parse(text string) ([]domain.PairRecord, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	var records []domain.PairRecord
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, domain.ErrEmptyInput
	}

	return records, nil
}

func parseLine(line string) (domain.PairRecord, error) {
	var correct, wrong int

	if m := statsRx.FindStringSubmatch(line); m != nil {
		var err error
		if correct, err = strconv.Atoi(m[1]); err != nil {
			return domain.PairRecord{}, domain.ErrInvalidFormat
		}
		if wrong, err = strconv.Atoi(m[2]); err != nil {
			return domain.PairRecord{}, domain.ErrInvalidFormat
		}
		loc := statsPrefixRx.FindStringIndex(line)
		line = line[:loc[0]] + line[loc[1]:]
	}

	primary, secondary, found := strings.Cut(line, "=")
	if !found {
		return domain.PairRecord{}, domain.ErrInvalidFormat
	}

	record := domain.NewPairRecord(primary, secondary)
	if !record.Valid() {
		return domain.PairRecord{}, domain.ErrInvalidFormat
	}
	record.Correct = correct
	record.Wrong = wrong

	return record, nil
}

// ParseManual parses a single "primary = secondary" entry typed by the learner.
// No stats are read; the record always starts at 0,0. Entries spanning several
// lines are rejected since they could not be written back as one line.
func ParseManual(text string) (domain.PairRecord, error) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "\r\n") {
		return domain.PairRecord{}, domain.ErrManualEntryFormat
	}

	primary, secondary, found := strings.Cut(text, "=")
	if !found {
		return domain.PairRecord{}, domain.ErrManualEntryFormat
	}

	record := domain.NewPairRecord(primary, secondary)
	if !record.Valid() {
		return domain.PairRecord{}, domain.ErrManualEntryFormat
	}
	return record, nil
}

// FormatLine renders one record in export form
func FormatLine(r domain.PairRecord) string {
	return fmt.Sprintf("[%d,%d] %s = %s", r.Correct, r.Wrong, r.Primary, r.Secondary)
}

// Serialize renders records one per line, stats always included
func Serialize(records []domain.PairRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, FormatLine(r))
	}
	return strings.Join(lines, "\n")
}
