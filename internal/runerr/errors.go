// Package runerr defines the error taxonomy shared by every stage of a
// season run. Fatal errors (missing inputs, broken invariants) abort the
// run before anything is persisted; row-level parse failures are skipped
// and counted, and "nothing detected" outcomes are results, not errors.
package runerr

import (
	"fmt"
	"sort"
	"strings"
)

// MissingInputError reports a required input table that is absent or empty.
// Always fatal.
type MissingInputError struct {
	Table string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("required input %q is missing or empty", e.Table)
}

// ConsistencyError reports a violated structural invariant. It carries the
// offending keys so the message enumerates them instead of a bare count.
type ConsistencyError struct {
	Check string
	Keys  []string
}

func (e *ConsistencyError) Error() string {
	keys := append([]string(nil), e.Keys...)
	sort.Strings(keys)
	return fmt.Sprintf("consistency check %q failed for keys: %s", e.Check, strings.Join(keys, ", "))
}

// ParseError reports a single input row that could not be interpreted.
// Individually non-fatal: callers record it on a RunSummary and move on.
type ParseError struct {
	Table  string
	Row    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failure in %s (row %s): %s", e.Table, e.Row, e.Reason)
}

// RunSummary aggregates non-fatal skips across one pipeline run.
type RunSummary struct {
	RowsSeen    int
	RowsSkipped int
	Skipped     []*ParseError
}

// Record counts one parsed-or-skipped row. A nil err counts a clean row.
func (s *RunSummary) Record(err *ParseError) {
	s.RowsSeen++
	if err != nil {
		s.RowsSkipped++
		s.Skipped = append(s.Skipped, err)
	}
}

// Merge folds another summary into this one.
func (s *RunSummary) Merge(other *RunSummary) {
	if other == nil {
		return
	}
	s.RowsSeen += other.RowsSeen
	s.RowsSkipped += other.RowsSkipped
	s.Skipped = append(s.Skipped, other.Skipped...)
}

// SkipFraction returns the fraction of rows skipped, 0 when nothing was seen.
func (s *RunSummary) SkipFraction() float64 {
	if s.RowsSeen == 0 {
		return 0
	}
	return float64(s.RowsSkipped) / float64(s.RowsSeen)
}

// CheckBudget returns an error when skips exceed the allowed fraction of
// all rows. Inputs are static snapshots, so exceeding the budget is
// deterministic and treated as fatal by the pipeline.
func (s *RunSummary) CheckBudget(maxFraction float64) error {
	if s.RowsSeen == 0 || s.SkipFraction() <= maxFraction {
		return nil
	}
	return fmt.Errorf("skipped %d of %d input rows (%.1f%%), over the %.1f%% budget",
		s.RowsSkipped, s.RowsSeen, 100*s.SkipFraction(), 100*maxFraction)
}
