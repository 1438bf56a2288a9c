package count

import (
	"errors"
	"slices"
	"strings"
)

// Summary is the merged outcome of a run.
type Summary struct {
	Pattern     string
	Total       int64
	Results     []Result
	Failed      int
	Interrupted bool
}

// Sum adds up the counts of all successful results.
func Sum(results []Result) int64 {
	var total int64
	for _, r := range results {
		if r.OK() {
			total += r.Count
		}
	}
	return total
}

// add merges one worker result. Only the collector calls it.
func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	if !r.OK() {
		s.Failed++
		return
	}
	s.Total += r.Count
}

func (s *Summary) finish() {
	slices.SortFunc(s.Results, func(a, b Result) int {
		return strings.Compare(a.Path, b.Path)
	})
}

// Partial reports whether the total covers fewer files than were dispatched.
func (s Summary) Partial() bool {
	return s.Failed > 0 || s.Interrupted
}

// Err joins the errors of all failed files, or returns nil.
func (s Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
