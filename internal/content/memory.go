package content

import (
	"fmt"
	"time"
)

// Limits caps each collection in Memory
type Limits struct {
	Templates int `json:"templates"`
	Hooks     int `json:"hooks"`
	Hashtags  int `json:"hashtags"`
	History   int `json:"history"`
}

// DefaultLimits returns the standard memory caps
func DefaultLimits() Limits {
	return Limits{Templates: 20, Hooks: 15, Hashtags: 30, History: 50}
}

// HistoryEntry records one generation
type HistoryEntry struct {
	ContentID       string
	ContentType     string
	Template        string
	Hook            string
	CTA             string
	Location        string
	Hashtags        []string
	Content         string
	UniquenessScore float64
	Timestamp       time.Time
}

// fifo is a bounded queue that evicts its oldest element on overflow
type fifo[T any] struct {
	items []T
	limit int
}

func newFIFO[T any](limit int) *fifo[T] {
	if limit < 1 {
		limit = 1
	}
	return &fifo[T]{items: make([]T, 0, limit), limit: limit}
}

func (q *fifo[T]) push(v T) {
	if len(q.items) == q.limit {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, v)
}

// last returns a copy of the newest n elements, oldest first
func (q *fifo[T]) last(n int) []T {
	if n > len(q.items) || n < 0 {
		n = len(q.items)
	}
	out := make([]T, n)
	copy(out, q.items[len(q.items)-n:])
	return out
}

func (q *fifo[T]) len() int {
	return len(q.items)
}

// Memory tracks recently used templates, hooks, hashtag batches and
// generations. It is not safe for concurrent use; Generator serializes access.
type Memory struct {
	templates *fifo[string]
	hooks     *fifo[string]
	hashtags  *fifo[[]string]
	history   *fifo[HistoryEntry]
}

// NewMemory creates an empty memory with the given caps
func NewMemory(limits Limits) *Memory {
	return &Memory{
		templates: newFIFO[string](limits.Templates),
		hooks:     newFIFO[string](limits.Hooks),
		hashtags:  newFIFO[[]string](limits.Hashtags),
		history:   newFIFO[HistoryEntry](limits.History),
	}
}

// Record pushes a generation into every collection
func (m *Memory) Record(e HistoryEntry) {
	m.templates.push(e.Template)
	m.hooks.push(e.Hook)
	m.hashtags.push(append([]string(nil), e.Hashtags...))
	m.history.push(e)
}

func (m *Memory) recentTemplates() map[string]bool {
	return toSet(m.templates.last(-1))
}

func (m *Memory) recentHooks() map[string]bool {
	return toSet(m.hooks.last(-1))
}

func (m *Memory) recentHashtags(batches int) map[string]bool {
	set := make(map[string]bool)
	for _, batch := range m.hashtags.last(batches) {
		for _, tag := range batch {
			set[tag] = true
		}
	}
	return set
}

// History returns up to n most recent entries, oldest first; n < 0 returns all
func (m *Memory) History(n int) []HistoryEntry {
	return m.history.last(n)
}

// Sizes returns the current length of each collection
func (m *Memory) Sizes() Limits {
	return Limits{
		Templates: m.templates.len(),
		Hooks:     m.hooks.len(),
		Hashtags:  m.hashtags.len(),
		History:   m.history.len(),
	}
}

// Utilization formats each collection as "used/cap"
func (m *Memory) Utilization() map[string]string {
	s := m.Sizes()
	return map[string]string{
		"templates": fmt.Sprintf("%d/%d", s.Templates, m.templates.limit),
		"hooks":     fmt.Sprintf("%d/%d", s.Hooks, m.hooks.limit),
		"hashtags":  fmt.Sprintf("%d/%d", s.Hashtags, m.hashtags.limit),
		"history":   fmt.Sprintf("%d/%d", s.History, m.history.limit),
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
