package search

// Key is one keyboard event driving the candidate cursor.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
)

// Cursor is the active-index state machine over a rendered candidate list.
// Arrow navigation wraps at both ends; Enter commits only while a candidate
// is active. Free-text fallback belongs to the caller.
type Cursor struct {
	size   int
	active int // -1 = no active candidate
}

// NewCursor creates a cursor over a list of the given size.
func NewCursor(size int) *Cursor {
	return &Cursor{size: size, active: -1}
}

// Reset points the cursor at a freshly rendered list. The active candidate
// is cleared.
func (c *Cursor) Reset(size int) {
	c.size = size
	c.active = -1
}

// Active returns the active candidate index, or -1.
func (c *Cursor) Active() int {
	return c.active
}

// Handle applies one key event. It returns the committed candidate index
// and true when Enter lands on an active candidate; otherwise (-1, false).
func (c *Cursor) Handle(key Key) (int, bool) {
	if c.size == 0 {
		return -1, false
	}

	switch key {
	case KeyDown:
		c.active++
		if c.active >= c.size {
			c.active = 0
		}
	case KeyUp:
		c.active--
		if c.active < 0 {
			c.active = c.size - 1
		}
	case KeyEnter:
		if c.active >= 0 {
			return c.active, true
		}
	}
	return -1, false
}
