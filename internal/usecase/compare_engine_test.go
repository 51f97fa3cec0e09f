package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/specmaru/backend/internal/domain"
)

func compareCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:       "s1",
			Name:     "갤럭시 S24",
			Category: domain.CategorySmartphones,
			Specs:    domain.NewSpecs("X", "x-value", "Y", "y-left"),
		},
		{
			ID:       "s2",
			Name:     "아이폰 15",
			Category: domain.CategorySmartphones,
			Specs:    domain.NewSpecs("Y", "y-right", "Z", "z-value"),
		},
		{
			ID:       "l1",
			Name:     "맥북 프로 14",
			Category: domain.CategoryLaptops,
			Specs:    domain.NewSpecs("메모리", "8GB"),
		},
	}
}

func productByID(t *testing.T, id string) domain.Product {
	t.Helper()
	for _, p := range compareCatalog() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("no product %q in test catalog", id)
	return domain.Product{}
}

func TestCompareEngineInitialState(t *testing.T) {
	engine := NewCompareEngine(compareCatalog())

	for _, side := range []SlotSide{SlotLeft, SlotRight} {
		slot := engine.Slot(side)
		if slot.Filled {
			t.Errorf("%s slot starts filled", side)
		}
		if slot.Query != "" || len(slot.Results) != 0 || slot.Highlight != -1 {
			t.Errorf("%s slot not an empty search: %+v", side, slot)
		}
	}
}

func TestCompareEngineDiffRows(t *testing.T) {
	t.Run("union keeps left order then new right keys", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		engine.Fill(SlotLeft, productByID(t, "s1"))  // specs X, Y
		engine.Fill(SlotRight, productByID(t, "s2")) // specs Y, Z

		rows := engine.DiffRows()
		var keys []string
		for _, row := range rows {
			keys = append(keys, row.Key)
		}
		if !reflect.DeepEqual(keys, []string{"X", "Y", "Z"}) {
			t.Fatalf("keys = %v, want [X Y Z]", keys)
		}

		// Row X: left value, right placeholder.
		if !rows[0].Left.Present || rows[0].Left.Lines[0] != "x-value" {
			t.Errorf("row X left = %+v, want x-value", rows[0].Left)
		}
		if rows[0].Right.Present || rows[0].Right.Lines[0] != Placeholder {
			t.Errorf("row X right = %+v, want placeholder", rows[0].Right)
		}

		// Row Z: left placeholder, right value.
		if rows[2].Left.Present || rows[2].Left.Lines[0] != Placeholder {
			t.Errorf("row Z left = %+v, want placeholder", rows[2].Left)
		}
		if !rows[2].Right.Present || rows[2].Right.Lines[0] != "z-value" {
			t.Errorf("row Z right = %+v, want z-value", rows[2].Right)
		}
	})

	t.Run("empty slot contributes placeholders only", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		engine.Fill(SlotLeft, productByID(t, "s1"))

		rows := engine.DiffRows()
		if len(rows) != 2 {
			t.Fatalf("rows = %d, want 2", len(rows))
		}
		for _, row := range rows {
			if row.Right.Present {
				t.Errorf("row %q right side present with empty slot", row.Key)
			}
		}
	})

	t.Run("multi-line value renders as separate lines", func(t *testing.T) {
		engine := NewCompareEngine(nil)
		engine.Fill(SlotLeft, domain.Product{
			ID:    "m",
			Specs: domain.NewSpecs("재생시간", "이어버드 7시간\n케이스 포함 30시간"),
		})

		rows := engine.DiffRows()
		want := []string{"이어버드 7시간", "케이스 포함 30시간"}
		if !reflect.DeepEqual(rows[0].Left.Lines, want) {
			t.Errorf("lines = %v, want %v", rows[0].Left.Lines, want)
		}
	})

	t.Run("no specs yields no rows", func(t *testing.T) {
		engine := NewCompareEngine(nil)
		engine.Fill(SlotLeft, domain.Product{ID: "bare"})
		if rows := engine.DiffRows(); len(rows) != 0 {
			t.Errorf("rows = %d, want 0", len(rows))
		}
	})
}

func TestCompareEngineSearch(t *testing.T) {
	t.Run("query recomputes results and resets highlight", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())

		if err := engine.SetQuery(SlotLeft, "갤럭시"); err != nil {
			t.Fatalf("SetQuery() error = %v", err)
		}
		engine.HighlightNext(SlotLeft)
		if engine.Slot(SlotLeft).Highlight != 0 {
			t.Fatalf("highlight = %d, want 0", engine.Slot(SlotLeft).Highlight)
		}

		if err := engine.SetQuery(SlotLeft, "맥북"); err != nil {
			t.Fatalf("SetQuery() error = %v", err)
		}
		slot := engine.Slot(SlotLeft)
		if slot.Highlight != -1 {
			t.Errorf("highlight = %d, want -1 after query change", slot.Highlight)
		}
		if len(slot.Results) != 1 || slot.Results[0].ID != "l1" {
			t.Errorf("results = %v, want [l1]", slot.Results)
		}
	})

	t.Run("empty query yields no results", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		if err := engine.SetQuery(SlotLeft, ""); err != nil {
			t.Fatalf("SetQuery() error = %v", err)
		}
		if got := engine.Slot(SlotLeft).Results; len(got) != 0 {
			t.Errorf("results = %v, want none for empty query", got)
		}
	})

	t.Run("query on filled slot is rejected", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		engine.Fill(SlotLeft, productByID(t, "s1"))

		if err := engine.SetQuery(SlotLeft, "맥북"); !errors.Is(err, domain.ErrSlotFilled) {
			t.Errorf("error = %v, want ErrSlotFilled", err)
		}
	})

	t.Run("snapshot results are detached from engine state", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		if err := engine.SetQuery(SlotLeft, "맥북"); err != nil {
			t.Fatalf("SetQuery() error = %v", err)
		}

		snapshot := engine.Slot(SlotLeft)
		snapshot.Results[0] = domain.Product{ID: "mutated"}

		if got := engine.Slot(SlotLeft).Results[0].ID; got != "l1" {
			t.Errorf("engine result id = %q after snapshot mutation, want l1", got)
		}
	})
}

func TestCompareEngineHighlightNavigation(t *testing.T) {
	setup := func(t *testing.T) *CompareEngine {
		t.Helper()
		engine := NewCompareEngine(compareCatalog())
		// "1" appears in every product's id or name (s1, 아이폰 15, l1).
		if err := engine.SetQuery(SlotLeft, "1"); err != nil {
			t.Fatalf("SetQuery() error = %v", err)
		}
		if n := len(engine.Slot(SlotLeft).Results); n != 3 {
			t.Fatalf("results = %d, want 3", n)
		}
		return engine
	}

	t.Run("next wraps from last to first", func(t *testing.T) {
		engine := setup(t)
		engine.HighlightNext(SlotLeft) // 0
		engine.HighlightNext(SlotLeft) // 1
		engine.HighlightNext(SlotLeft) // 2
		engine.HighlightNext(SlotLeft) // wraps to 0
		if got := engine.Slot(SlotLeft).Highlight; got != 0 {
			t.Errorf("highlight = %d, want 0", got)
		}
	})

	t.Run("prev wraps from first to last", func(t *testing.T) {
		engine := setup(t)
		engine.HighlightNext(SlotLeft) // 0
		engine.HighlightPrev(SlotLeft) // wraps to 2
		if got := engine.Slot(SlotLeft).Highlight; got != 2 {
			t.Errorf("highlight = %d, want 2", got)
		}
	})

	t.Run("no results leaves highlight at -1", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		engine.HighlightNext(SlotLeft)
		engine.HighlightPrev(SlotLeft)
		if got := engine.Slot(SlotLeft).Highlight; got != -1 {
			t.Errorf("highlight = %d, want -1", got)
		}
	})
}

func TestCompareEngineCommit(t *testing.T) {
	t.Run("commit without highlight is a no-op", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		if err := engine.SetQuery(SlotLeft, "갤럭시"); err != nil {
			t.Fatal(err)
		}

		if err := engine.CommitHighlighted(SlotLeft); !errors.Is(err, domain.ErrNoSelection) {
			t.Errorf("error = %v, want ErrNoSelection", err)
		}
		if engine.Slot(SlotLeft).Filled {
			t.Error("slot filled without a selection")
		}
	})

	t.Run("commit fills slot and clears search state", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		if err := engine.SetQuery(SlotLeft, "맥북"); err != nil {
			t.Fatal(err)
		}
		engine.HighlightNext(SlotLeft)

		if err := engine.CommitHighlighted(SlotLeft); err != nil {
			t.Fatalf("CommitHighlighted() error = %v", err)
		}
		slot := engine.Slot(SlotLeft)
		if !slot.Filled || slot.Product.ID != "l1" {
			t.Fatalf("slot = %+v, want filled with l1", slot)
		}
		if slot.Query != "" || len(slot.Results) != 0 || slot.Highlight != -1 {
			t.Errorf("search state not cleared: %+v", slot)
		}
	})

	t.Run("category mismatch rejects commit and changes nothing", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		engine.Fill(SlotLeft, productByID(t, "s1")) // smartphones

		if err := engine.SetQuery(SlotRight, "맥북"); err != nil { // laptops candidate
			t.Fatal(err)
		}
		engine.HighlightNext(SlotRight)
		before := engine.Slot(SlotRight)

		err := engine.CommitHighlighted(SlotRight)
		if !errors.Is(err, domain.ErrCategoryMismatch) {
			t.Fatalf("error = %v, want ErrCategoryMismatch", err)
		}

		after := engine.Slot(SlotRight)
		if after.Filled {
			t.Error("rejected commit filled the slot")
		}
		if after.Query != before.Query || after.Highlight != before.Highlight || len(after.Results) != len(before.Results) {
			t.Errorf("rejected commit mutated search state: before %+v after %+v", before, after)
		}
		left := engine.Slot(SlotLeft)
		if !left.Filled || left.Product.ID != "s1" {
			t.Errorf("rejected commit mutated the other slot: %+v", left)
		}
	})

	t.Run("empty other slot imposes no category constraint", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		if err := engine.SetQuery(SlotRight, "맥북"); err != nil {
			t.Fatal(err)
		}
		engine.HighlightNext(SlotRight)

		if err := engine.CommitHighlighted(SlotRight); err != nil {
			t.Errorf("CommitHighlighted() error = %v, want nil", err)
		}
	})

	t.Run("pointer commit out of bounds is a no-op", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())
		if err := engine.SetQuery(SlotLeft, "갤럭시"); err != nil {
			t.Fatal(err)
		}
		if err := engine.CommitResult(SlotLeft, 99); !errors.Is(err, domain.ErrNoSelection) {
			t.Errorf("error = %v, want ErrNoSelection", err)
		}
	})
}

func TestCompareEngineClear(t *testing.T) {
	engine := NewCompareEngine(compareCatalog())
	engine.Fill(SlotLeft, productByID(t, "s1"))

	engine.Clear(SlotLeft)

	slot := engine.Slot(SlotLeft)
	if slot.Filled {
		t.Error("slot still filled after Clear")
	}
	if slot.Query != "" || len(slot.Results) != 0 || slot.Highlight != -1 {
		t.Errorf("Clear left stale search state: %+v", slot)
	}
}

func TestCompareEngineHydrationGenerations(t *testing.T) {
	t.Run("stale result is discarded", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())

		older := engine.BeginHydration(SlotLeft)
		newer := engine.BeginHydration(SlotLeft)

		// The newer, faster request lands first.
		if !engine.ApplyHydration(SlotLeft, newer, productByID(t, "s2"), true) {
			t.Fatal("current-generation result not applied")
		}
		// The older, slower one must not overwrite it.
		if engine.ApplyHydration(SlotLeft, older, productByID(t, "s1"), true) {
			t.Error("stale-generation result was applied")
		}

		slot := engine.Slot(SlotLeft)
		if !slot.Filled || slot.Product.ID != "s2" {
			t.Errorf("slot = %+v, want s2 from the latest request", slot)
		}
	})

	t.Run("unresolved hydration leaves slot searching", func(t *testing.T) {
		engine := NewCompareEngine(compareCatalog())

		gen := engine.BeginHydration(SlotRight)
		if !engine.ApplyHydration(SlotRight, gen, domain.Product{}, false) {
			t.Fatal("result not applied")
		}
		slot := engine.Slot(SlotRight)
		if slot.Filled {
			t.Error("unresolved hydration filled the slot")
		}
	})
}
