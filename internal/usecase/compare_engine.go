package usecase

import (
	"github.com/specmaru/backend/internal/domain"
)

// Placeholder is rendered for a diff cell whose product lacks the key or
// whose slot is unfilled.
const Placeholder = "-"

// SlotSide identifies one of the two comparison positions.
type SlotSide int

const (
	SlotLeft SlotSide = iota
	SlotRight
)

// Other returns the opposite side.
func (s SlotSide) Other() SlotSide {
	if s == SlotLeft {
		return SlotRight
	}
	return SlotLeft
}

func (s SlotSide) String() string {
	if s == SlotLeft {
		return "left"
	}
	return "right"
}

// slotState is the tagged union behind one slot: Filled when product is set,
// Searching otherwise. Search fields are always zeroed while Filled, so the
// inconsistent combinations of the loose-flags approach cannot occur.
type slotState struct {
	product    *domain.Product
	query      string
	results    []domain.Product
	highlight  int
	generation uint64 // newest hydration request issued for this slot
}

// SlotView is a read-only snapshot of a slot's state.
type SlotView struct {
	Filled    bool
	Product   domain.Product
	Query     string
	Results   []domain.Product
	Highlight int
}

// DiffCell is one side of a diff row: the value's display lines when the
// product carries the key, or the placeholder.
type DiffCell struct {
	Lines   []string `json:"lines"`
	Present bool     `json:"present"`
}

// DiffRow is one row of the side-by-side spec table.
type DiffRow struct {
	Key   string   `json:"key"`
	Left  DiffCell `json:"left"`
	Right DiffCell `json:"right"`
}

// CompareEngine holds the two comparison slots over a catalog snapshot. The
// engine is a plain state machine: all transitions are synchronous, and
// asynchronous hydration is guarded by per-slot request generations so a
// slow stale resolution cannot overwrite a newer one.
type CompareEngine struct {
	catalog []domain.Product
	slots   [2]slotState
}

// NewCompareEngine creates an engine with both slots empty (Searching with
// an empty query).
func NewCompareEngine(catalog []domain.Product) *CompareEngine {
	e := &CompareEngine{catalog: catalog}
	e.slots[SlotLeft] = emptySearching()
	e.slots[SlotRight] = emptySearching()
	return e
}

func emptySearching() slotState {
	return slotState{highlight: -1}
}

// Slot returns a snapshot of one slot. The results slice is copied so the
// caller cannot mutate engine state through it.
func (e *CompareEngine) Slot(side SlotSide) SlotView {
	st := e.slots[side]
	view := SlotView{
		Query:     st.query,
		Highlight: st.highlight,
	}
	if len(st.results) > 0 {
		view.Results = append([]domain.Product(nil), st.results...)
	}
	if st.product != nil {
		view.Filled = true
		view.Product = *st.product
	}
	return view
}

// Fill places a product directly into a slot, clearing any search state.
// Used for URL-driven hydration, which intentionally does not enforce the
// category constraint.
func (e *CompareEngine) Fill(side SlotSide, product domain.Product) {
	e.slots[side] = slotState{
		product:    &product,
		highlight:  -1,
		generation: e.slots[side].generation,
	}
}

// Clear empties a slot back to Searching with no query, results, or
// highlight.
func (e *CompareEngine) Clear(side SlotSide) {
	gen := e.slots[side].generation
	e.slots[side] = emptySearching()
	e.slots[side].generation = gen
}

// SetQuery updates a Searching slot's query and recomputes its results over
// the full catalog by normalized substring match. The highlight resets to
// none. An empty query yields no results. Returns domain.ErrSlotFilled when
// the slot currently holds a product.
func (e *CompareEngine) SetQuery(side SlotSide, query string) error {
	st := &e.slots[side]
	if st.product != nil {
		return domain.ErrSlotFilled
	}

	st.query = query
	st.highlight = -1
	st.results = nil

	normalized := Normalize(query)
	if normalized == "" {
		return nil
	}
	for _, p := range e.catalog {
		if productMatches(p, normalized) {
			st.results = append(st.results, p)
		}
	}
	return nil
}

// HighlightNext advances the highlight circularly forward, wrapping from
// the last result to the first. No-op when there are no results.
func (e *CompareEngine) HighlightNext(side SlotSide) {
	st := &e.slots[side]
	if len(st.results) == 0 {
		return
	}
	if st.highlight < len(st.results)-1 {
		st.highlight++
	} else {
		st.highlight = 0
	}
}

// HighlightPrev moves the highlight circularly backward, wrapping from the
// first result to the last. No-op when there are no results.
func (e *CompareEngine) HighlightPrev(side SlotSide) {
	st := &e.slots[side]
	if len(st.results) == 0 {
		return
	}
	if st.highlight > 0 {
		st.highlight--
	} else {
		st.highlight = len(st.results) - 1
	}
}

// CommitHighlighted commits the keyboard-highlighted result. No-op
// (domain.ErrNoSelection) when nothing is highlighted.
func (e *CompareEngine) CommitHighlighted(side SlotSide) error {
	st := e.slots[side]
	if st.highlight < 0 || st.highlight >= len(st.results) {
		return domain.ErrNoSelection
	}
	return e.CommitResult(side, st.highlight)
}

// CommitResult commits the result at index (pointer selection). The commit
// is rejected with domain.ErrCategoryMismatch, with no state changes, when
// the other slot holds a product of a different category. An empty other
// slot imposes no constraint.
func (e *CompareEngine) CommitResult(side SlotSide, index int) error {
	st := e.slots[side]
	if st.product != nil {
		return domain.ErrSlotFilled
	}
	if index < 0 || index >= len(st.results) {
		return domain.ErrNoSelection
	}

	candidate := st.results[index]
	if other := e.slots[side.Other()]; other.product != nil && other.product.Category != candidate.Category {
		return domain.ErrCategoryMismatch
	}

	e.Fill(side, candidate)
	return nil
}

// BeginHydration registers a new asynchronous resolution request for a slot
// and returns its generation token.
func (e *CompareEngine) BeginHydration(side SlotSide) uint64 {
	e.slots[side].generation++
	return e.slots[side].generation
}

// ApplyHydration applies a resolution result if it is still current.
// Results carrying a generation older than the slot's newest request are
// discarded, which is what keeps rapid navigation from being overwritten by
// a slower earlier load. found=false leaves the slot Searching and empty.
// Reports whether the result was applied.
func (e *CompareEngine) ApplyHydration(side SlotSide, generation uint64, product domain.Product, found bool) bool {
	if generation != e.slots[side].generation {
		return false
	}
	if found {
		e.Fill(side, product)
	} else {
		e.Clear(side)
	}
	return true
}

// DiffRows computes the side-by-side spec table: the ordered union of both
// products' spec keys (left keys first in their original order, then right
// keys not already present), one row per key.
func (e *CompareEngine) DiffRows() []DiffRow {
	var leftSpecs, rightSpecs domain.Specs
	if p := e.slots[SlotLeft].product; p != nil {
		leftSpecs = p.Specs
	}
	if p := e.slots[SlotRight].product; p != nil {
		rightSpecs = p.Specs
	}

	keys := unionKeys(leftSpecs, rightSpecs)
	rows := make([]DiffRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, DiffRow{
			Key:   key,
			Left:  diffCell(leftSpecs, key),
			Right: diffCell(rightSpecs, key),
		})
	}
	return rows
}

func unionKeys(left, right domain.Specs) []string {
	seen := make(map[string]struct{}, left.Len()+right.Len())
	keys := make([]string, 0, left.Len()+right.Len())
	for _, k := range left.Keys() {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for _, k := range right.Keys() {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

func diffCell(specs domain.Specs, key string) DiffCell {
	v, ok := specs.Get(key)
	if !ok {
		return DiffCell{Lines: []string{Placeholder}}
	}
	return DiffCell{Lines: v.Lines(), Present: true}
}
