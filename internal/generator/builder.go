package generator

import (
	"context"
	"iter"
	"slices"
)

// ctxCheckInterval is how many candidate checks run between context polls.
const ctxCheckInterval = 1024

// Candidate is a conflict-free assignment before scoring. Classes carries the
// full schedule of every chosen index, regardless of ClassesToConsider.
type Candidate struct {
	Picks   []Pick
	Classes []ClassSession
}

// Budget caps the search. A zero value means unbounded.
type Budget struct {
	// MaxSteps limits how many index candidates are checked for conflicts.
	MaxSteps int
}

type slot struct {
	day   int
	start int
	end   int
	weeks []int
	timed bool
}

type preparedIndex struct {
	number  string
	classes []ClassSession
	slots   []slot
}

type preparedModule struct {
	code    string
	indexes []preparedIndex
}

// Builder enumerates every legal combination of one index per module.
//
// The walk is a depth-first backtracking search over an explicit stack, so
// deep module lists never grow the goroutine stack. A candidate index is
// rejected as soon as one of its sessions conflicts with a session already
// committed, which prunes the whole subtree below it. Worst-case cost is the
// product of per-module index counts, times the pairwise session checks at
// each level.
type Builder struct {
	modules   []preparedModule
	budget    Budget
	steps     int
	truncated bool
}

// NewBuilder prepares modules for enumeration. Module order decides pick order.
func NewBuilder(modules []Module, budget Budget) *Builder {
	prepared := make([]preparedModule, 0, len(modules))
	for _, module := range modules {
		pm := preparedModule{code: module.Code, indexes: make([]preparedIndex, 0, len(module.Indexes))}
		for _, index := range module.Indexes {
			pi := preparedIndex{number: index.IndexNumber, classes: index.Classes, slots: make([]slot, 0, len(index.Classes))}
			for _, cls := range index.Classes {
				pi.slots = append(pi.slots, newSlot(cls))
			}
			pm.indexes = append(pm.indexes, pi)
		}
		prepared = append(prepared, pm)
	}
	return &Builder{modules: prepared, budget: budget}
}

// Combinations yields each legal combination lazily. The sequence ends early
// when the consumer stops, the context is done, or the step budget runs out;
// the last two set Truncated.
func (b *Builder) Combinations(ctx context.Context) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		n := len(b.modules)
		if n == 0 {
			return
		}
		for _, module := range b.modules {
			if len(module.indexes) == 0 {
				return
			}
		}

		next := make([]int, n)
		chosen := make([]int, n)
		marks := make([]int, n+1)
		active := make([]slot, 0, 32)

		depth := 0
		for depth >= 0 {
			if depth == n {
				if ctx.Err() != nil {
					b.truncated = true
					return
				}
				if !yield(b.assemble(chosen)) {
					return
				}
				depth--
				continue
			}

			active = active[:marks[depth]]
			module := b.modules[depth]
			if next[depth] >= len(module.indexes) {
				depth--
				continue
			}
			candidate := next[depth]
			next[depth]++

			b.steps++
			if b.budget.MaxSteps > 0 && b.steps > b.budget.MaxSteps {
				b.truncated = true
				return
			}
			if b.steps%ctxCheckInterval == 0 && ctx.Err() != nil {
				b.truncated = true
				return
			}

			slots := module.indexes[candidate].slots
			if conflictsWith(slots, active) {
				continue
			}
			active = append(active, slots...)
			chosen[depth] = candidate
			marks[depth+1] = len(active)
			if depth+1 < n {
				next[depth+1] = 0
			}
			depth++
		}
	}
}

// Truncated reports whether the last walk stopped before exhausting the search space.
func (b *Builder) Truncated() bool {
	return b.truncated
}

// Steps returns the number of index candidates checked so far.
func (b *Builder) Steps() int {
	return b.steps
}

func (b *Builder) assemble(chosen []int) Candidate {
	picks := make([]Pick, len(b.modules))
	var classes []ClassSession
	for i, module := range b.modules {
		index := module.indexes[chosen[i]]
		picks[i] = Pick{ModuleCode: module.code, IndexNumber: index.number}
		classes = append(classes, index.classes...)
	}
	return Candidate{Picks: picks, Classes: classes}
}

// BuildCombinations returns every legal combination eagerly.
func BuildCombinations(modules []Module) []Candidate {
	return slices.Collect(NewBuilder(modules, Budget{}).Combinations(context.Background()))
}

// Conflicts reports whether two sessions overlap: same day, intersecting
// weeks (an empty week list means every week) and overlapping half-open
// time ranges. Back-to-back sessions do not conflict.
func Conflicts(a, b ClassSession) bool {
	return newSlot(a).overlaps(newSlot(b))
}

func newSlot(cls ClassSession) slot {
	start, startOK := ParseMinutes(cls.StartTime)
	end, endOK := ParseMinutes(cls.EndTime)
	weeks := slices.Clone(cls.Weeks)
	slices.Sort(weeks)
	return slot{
		day:   WeekdayIndex(cls.Day),
		start: start,
		end:   end,
		weeks: weeks,
		timed: startOK && endOK,
	}
}

// overlaps ignores sessions whose times cannot be parsed.
func (s slot) overlaps(o slot) bool {
	if !s.timed || !o.timed || s.day != o.day || s.day < 0 {
		return false
	}
	if !(s.start < o.end && o.start < s.end) {
		return false
	}
	return weeksIntersect(s.weeks, o.weeks)
}

func conflictsWith(candidate, active []slot) bool {
	for _, c := range candidate {
		for _, a := range active {
			if c.overlaps(a) {
				return true
			}
		}
	}
	return false
}

// weeksIntersect expects sorted input.
func weeksIntersect(a, b []int) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}
