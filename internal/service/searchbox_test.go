package service

import (
	"testing"

	"stockdash/internal/domain"
	"stockdash/internal/render"
	"stockdash/internal/search"
)

func testIndex() *search.Index {
	return search.NewIndex([]domain.SymbolEntry{
		{Name: "Samsung Electronics", ShortCode: "005930"},
		{Name: "Samsung SDI", ShortCode: "006400"},
		{Name: "SK Hynix", ShortCode: "000660"},
	})
}

func TestSearchBox_SetQuery(t *testing.T) {
	surface := render.NewMemorySurface()
	box := NewSearchBox(surface, testIndex(), 5)

	box.SetQuery("sam")
	if got := surface.Text("suggestion-0"); got != "Samsung Electronics (005930)" {
		t.Errorf("suggestion-0 = %q", got)
	}
	if got := surface.Text("suggestion-1"); got != "Samsung SDI (006400)" {
		t.Errorf("suggestion-1 = %q", got)
	}
	if got := surface.Text("suggestion-2"); got != "" {
		t.Errorf("row past the match count must be blank, got %q", got)
	}

	// A narrower query must clear the row its old candidate occupied.
	box.SetQuery("samsung e")
	if got := surface.Text("suggestion-1"); got != "" {
		t.Errorf("stale candidate left behind: %q", got)
	}
}

func TestSearchBox_ConfiguredLimit(t *testing.T) {
	surface := render.NewMemorySurface()
	box := NewSearchBox(surface, testIndex(), 1)

	box.SetQuery("sam") // two catalog matches, limit keeps the first
	results := box.Results()
	if len(results) != 1 || results[0].ShortCode != "005930" {
		t.Fatalf("results = %+v, want only the first catalog match", results)
	}
	if got := surface.Text("suggestion-1"); got != "" {
		t.Errorf("rows past the limit must never paint, got %q", got)
	}

	// A non-positive limit falls back to the default.
	box = NewSearchBox(surface, testIndex(), 0)
	box.SetQuery("sam")
	if len(box.Results()) != 2 {
		t.Errorf("default limit must admit both matches, got %d", len(box.Results()))
	}
}

func TestSearchBox_CursorCommit(t *testing.T) {
	surface := render.NewMemorySurface()
	box := NewSearchBox(surface, testIndex(), 5)
	box.SetQuery("sam")

	// "sam" is not an exact name or code and no candidate is active yet.
	if _, ok := box.HandleKey(search.KeyEnter); ok {
		t.Fatal("Enter must not commit before a candidate is activated")
	}

	box.HandleKey(search.KeyDown)
	if !surface.HasClass("suggestion-0", activeSuggestionClass) {
		t.Error("first ArrowDown must activate the first candidate")
	}

	box.HandleKey(search.KeyDown)
	if surface.HasClass("suggestion-0", activeSuggestionClass) {
		t.Error("old active row must lose its highlight")
	}
	if !surface.HasClass("suggestion-1", activeSuggestionClass) {
		t.Error("second candidate must be highlighted")
	}

	entry, ok := box.HandleKey(search.KeyEnter)
	if !ok || entry.ShortCode != "006400" {
		t.Errorf("commit = %+v ok=%v", entry, ok)
	}
}

func TestSearchBox_CursorWrapsBothEnds(t *testing.T) {
	surface := render.NewMemorySurface()
	box := NewSearchBox(surface, testIndex(), 5)
	box.SetQuery("sam")

	box.HandleKey(search.KeyUp) // from inactive wraps to the last
	if !surface.HasClass("suggestion-1", activeSuggestionClass) {
		t.Error("ArrowUp from inactive must land on the last candidate")
	}
	box.HandleKey(search.KeyDown) // past the last wraps to the first
	if !surface.HasClass("suggestion-0", activeSuggestionClass) {
		t.Error("ArrowDown past the end must wrap to the first candidate")
	}
}

func TestSearchBox_FreeTextEntry(t *testing.T) {
	t.Run("Exact Name Resolves", func(t *testing.T) {
		box := NewSearchBox(render.NewMemorySurface(), testIndex(), 5)
		box.SetQuery("SK Hynix")
		entry, ok := box.HandleKey(search.KeyEnter)
		if !ok || entry.ShortCode != "000660" {
			t.Errorf("entry = %+v ok=%v", entry, ok)
		}
	})

	t.Run("Raw Code Without Catalog", func(t *testing.T) {
		box := NewSearchBox(render.NewMemorySurface(), nil, 5)
		box.SetQuery("005930")
		entry, ok := box.HandleKey(search.KeyEnter)
		if !ok || entry.ShortCode != "005930" {
			t.Errorf("entry = %+v ok=%v", entry, ok)
		}
	})

	t.Run("Empty Input Commits Nothing", func(t *testing.T) {
		box := NewSearchBox(render.NewMemorySurface(), testIndex(), 5)
		box.SetQuery("")
		if _, ok := box.HandleKey(search.KeyEnter); ok {
			t.Error("Enter on empty input must be a no-op")
		}
	})
}

func TestSearchBox_QueryResetsCursor(t *testing.T) {
	surface := render.NewMemorySurface()
	box := NewSearchBox(surface, testIndex(), 5)

	box.SetQuery("sam")
	box.HandleKey(search.KeyDown)
	box.SetQuery("samsung")
	if surface.HasClass("suggestion-0", activeSuggestionClass) {
		t.Error("a text change must clear the active candidate")
	}
}
