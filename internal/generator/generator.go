package generator

import (
	"container/heap"
	"context"
	"time"
)

// Options tunes a Generate call. The zero value applies ResultCap and no budget.
type Options struct {
	Budget Budget
	Cap    int
	Now    func() time.Time
}

// Generate filters, enumerates and ranks timetable combinations. A module left
// with no index after filtering makes every combination impossible, so the
// result is empty.
//
// Every legal combination is scored so that the returned top slice and
// TotalCombinations match an exhaustive run. Only the best Cap candidates are
// held in memory. A cancelled context or an exhausted budget ends the search
// early and marks the result Truncated.
func Generate(ctx context.Context, modules []Module, filters Filters, opts Options) Result {
	if opts.Cap <= 0 {
		opts.Cap = ResultCap
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if ctx == nil {
		ctx = context.Background()
	}

	filters = NormalizeFilters(filters)
	filtered := FilterModules(modules, filters)
	if len(modules) == 0 || len(filtered) == 0 || len(filtered) < len(modules) {
		return emptyResult(opts.Now().UTC())
	}

	builder := NewBuilder(filtered, opts.Budget)
	top := &topCandidates{}
	total := 0
	for candidate := range builder.Combinations(ctx) {
		entry := rankedCandidate{candidate: candidate, score: Score(candidate.Classes, filters), seq: total}
		total++
		if top.Len() < opts.Cap {
			heap.Push(top, entry)
			continue
		}
		if entry.beats((*top)[0]) {
			(*top)[0] = entry
			heap.Fix(top, 0)
		}
	}

	ordered := make([]rankedCandidate, top.Len())
	for i := len(ordered) - 1; i >= 0; i-- {
		ordered[i] = heap.Pop(top).(rankedCandidate)
	}

	combinations := make([]Combination, 0, len(ordered))
	for _, entry := range ordered {
		combination := Enrich(entry.candidate, filters)
		combination.Score = entry.score
		combinations = append(combinations, combination)
	}

	return Result{
		Combinations:      combinations,
		GeneratedAt:       opts.Now().UTC(),
		TotalCombinations: total,
		ReturnedCount:     len(combinations),
		HasMore:           total > opts.Cap,
		Truncated:         builder.Truncated(),
	}
}

// NormalizeFilters rewrites the day window times into HHMM.
func NormalizeFilters(filters Filters) Filters {
	filters.DayStartEnd.StartAfter = NormalizeTime(filters.DayStartEnd.StartAfter)
	filters.DayStartEnd.EndBefore = NormalizeTime(filters.DayStartEnd.EndBefore)
	return filters
}

type rankedCandidate struct {
	candidate Candidate
	score     float64
	seq       int
}

// beats orders by score, then by emission order so ties stay stable.
func (r rankedCandidate) beats(other rankedCandidate) bool {
	if r.score != other.score {
		return r.score > other.score
	}
	return r.seq < other.seq
}

// topCandidates is a min-heap whose root is the weakest kept candidate.
type topCandidates []rankedCandidate

func (h topCandidates) Len() int           { return len(h) }
func (h topCandidates) Less(i, j int) bool { return h[j].beats(h[i]) }
func (h topCandidates) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *topCandidates) Push(x any) { *h = append(*h, x.(rankedCandidate)) }

func (h *topCandidates) Pop() any {
	old := *h
	item := old[len(old)-1]
	*h = old[:len(old)-1]
	return item
}
