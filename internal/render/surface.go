package render

import (
	"sort"
	"strings"
	"sync"
)

// Surface is the mutation boundary between the render components and the
// host view. Elements are addressed by the fixed-id scheme the host page
// exposes (status, current-price, per-level book cells, per-code heatmap
// blocks). The engine owns all writes; reads from other goroutines are
// allowed for inspection.
type Surface interface {
	SetText(id, text string)
	Text(id string) string
	AddClass(id, class string)
	RemoveClass(id, class string)
	SetClass(id, class string)
	HasClass(id, class string) bool
	SetWeight(id string, weight float64)
	Weight(id string) float64
}

// MemorySurface is the in-memory Surface used by the app and its tests.
// Elements spring into existence on first write.
type MemorySurface struct {
	mu      sync.RWMutex
	texts   map[string]string
	classes map[string]map[string]bool
	weights map[string]float64
}

// NewMemorySurface creates an empty surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{
		texts:   make(map[string]string),
		classes: make(map[string]map[string]bool),
		weights: make(map[string]float64),
	}
}

func (s *MemorySurface) SetText(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[id] = text
}

func (s *MemorySurface) Text(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texts[id]
}

func (s *MemorySurface) AddClass(id, class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.classes[id]
	if !ok {
		set = make(map[string]bool)
		s.classes[id] = set
	}
	set[class] = true
}

func (s *MemorySurface) RemoveClass(id, class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.classes[id]; ok {
		delete(set, class)
	}
}

// SetClass replaces the element's whole class list. An empty class clears it.
func (s *MemorySurface) SetClass(id, class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[string]bool)
	for _, c := range strings.Fields(class) {
		set[c] = true
	}
	s.classes[id] = set
}

func (s *MemorySurface) HasClass(id, class string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes[id][class]
}

// ClassList returns the element's classes in sorted order (for tests).
func (s *MemorySurface) ClassList(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]string, 0, len(s.classes[id]))
	for c := range s.classes[id] {
		list = append(list, c)
	}
	sort.Strings(list)
	return list
}

func (s *MemorySurface) SetWeight(id string, weight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights[id] = weight
}

func (s *MemorySurface) Weight(id string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weights[id]
}
