package hashstate

import "strings"

// Location is the page address as far as the fragment goes.
type Location interface {
	// Hash returns the current fragment including '#', or "" if there is none.
	Hash() string
	// Push sets the fragment and creates a history entry.
	Push(fragment string)
	// Replace sets the fragment without creating a history entry.
	Replace(fragment string)
}

// Synchronizer reads and writes selection state through a Location.
type Synchronizer struct {
	loc Location
}

// NewSynchronizer wraps loc.
func NewSynchronizer(loc Location) *Synchronizer {
	return &Synchronizer{loc: loc}
}

// Empty reports whether the address carries no fragment at all.
func (s *Synchronizer) Empty() bool {
	return strings.TrimPrefix(s.loc.Hash(), "#") == ""
}

// Read decodes the current fragment.
func (s *Synchronizer) Read() Fragment {
	return Parse(s.loc.Hash())
}

// Write encodes f into the address. With replace the current history
// entry is overwritten; otherwise a navigable entry is created. Writing
// the fragment the address already holds does nothing.
func (s *Synchronizer) Write(f Fragment, replace bool) bool {
	next := Format(f)
	if s.loc.Hash() == next {
		return false
	}
	if replace {
		s.loc.Replace(next)
	} else {
		s.loc.Push(next)
	}
	return true
}

// MemoryLocation is an in-process Location with a browser-like history
// stack. It backs the CLI and tests.
type MemoryLocation struct {
	entries  []string
	cursor   int
	pushes   int
	replaces int
}

// NewMemoryLocation starts with one history entry holding fragment.
func NewMemoryLocation(fragment string) *MemoryLocation {
	return &MemoryLocation{entries: []string{fragment}}
}

func (m *MemoryLocation) Hash() string { return m.entries[m.cursor] }

func (m *MemoryLocation) Push(fragment string) {
	m.entries = append(m.entries[:m.cursor+1], fragment)
	m.cursor++
	m.pushes++
}

func (m *MemoryLocation) Replace(fragment string) {
	m.entries[m.cursor] = fragment
	m.replaces++
}

// Back moves one entry back and reports whether it could.
func (m *MemoryLocation) Back() bool {
	if m.cursor == 0 {
		return false
	}
	m.cursor--
	return true
}

// Forward moves one entry forward and reports whether it could.
func (m *MemoryLocation) Forward() bool {
	if m.cursor == len(m.entries)-1 {
		return false
	}
	m.cursor++
	return true
}

// Len is the number of history entries.
func (m *MemoryLocation) Len() int { return len(m.entries) }

// Pushes counts Push calls.
func (m *MemoryLocation) Pushes() int { return m.pushes }

// Replaces counts Replace calls.
func (m *MemoryLocation) Replaces() int { return m.replaces }
