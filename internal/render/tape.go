package render

import (
	"fmt"

	"stockdash/internal/domain"
)

// TapeCapacity bounds the recent-executions log. The oldest entry is
// evicted when a sixteenth arrives.
const TapeCapacity = 15

// TradeTape renders the bounded most-recent-first execution log.
type TradeTape struct {
	surface  Surface
	capacity int
	entries  []domain.Execution // head = most recent
}

// NewTradeTape creates an empty tape with the default capacity.
func NewTradeTape(surface Surface) *TradeTape {
	return &TradeTape{surface: surface, capacity: TapeCapacity}
}

// SetCapacity overrides the row count. Excess entries are evicted and their
// rows cleared.
func (t *TradeTape) SetCapacity(n int) {
	if n <= 0 {
		return
	}
	if n < t.capacity {
		for row := n; row < t.capacity; row++ {
			t.clearRow(row)
		}
	}
	t.capacity = n
	if len(t.entries) > n {
		t.entries = t.entries[:n]
	}
}

// Append inserts the execution at the head, evicts past capacity, and
// repaints the visible rows. Executions are immutable once appended.
func (t *TradeTape) Append(exec domain.Execution) {
	t.entries = append([]domain.Execution{exec}, t.entries...)
	if len(t.entries) > t.capacity {
		t.entries = t.entries[:t.capacity]
	}
	t.repaint()
}

// Len returns the number of held executions.
func (t *TradeTape) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the tape, most recent first.
func (t *TradeTape) Entries() []domain.Execution {
	out := make([]domain.Execution, len(t.entries))
	copy(out, t.entries)
	return out
}

// Reset drops all entries and clears the rows.
func (t *TradeTape) Reset() {
	t.entries = nil
	for row := 0; row < t.capacity; row++ {
		t.clearRow(row)
	}
}

func (t *TradeTape) clearRow(row int) {
	t.surface.SetText(tapeCellID(row, "time"), "")
	t.surface.SetText(tapeCellID(row, "price"), "")
	t.surface.SetText(tapeCellID(row, "volume"), "")
	t.surface.SetClass(tapeCellID(row, "price"), "")
}

func (t *TradeTape) repaint() {
	for row, exec := range t.entries {
		t.surface.SetText(tapeCellID(row, "time"), exec.FormatTime())
		t.surface.SetText(tapeCellID(row, "price"), FormatDecimal(exec.Price))
		t.surface.SetText(tapeCellID(row, "volume"), FormatInt(exec.Volume))
		// Colored by the sign of the execution's own diff, not by
		// comparison to the prior tape entry.
		t.surface.SetClass(tapeCellID(row, "price"), exec.DiffDirection())
	}
}

func tapeCellID(row int, col string) string {
	return fmt.Sprintf("trade-%d-%s", row, col)
}
