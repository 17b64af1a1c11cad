package steps

// NameMap is an insertion-ordered map of step name to universe entry with
// overwrite-on-duplicate-key semantics: setting an existing name replaces
// its value but keeps its original position. The resolver depends on this
// deterministic iteration order.
type NameMap struct {
	order []string
	items map[string]mapEntry
}

// mapEntry is one universe slot. A known entry carries a usable factory;
// an unknown one only remembers the identifier that failed to resolve so
// diagnostics can name it.
type mapEntry struct {
	reg   Registration
	kind  string
	known bool
}

// NewNameMap creates an empty NameMap.
func NewNameMap() *NameMap {
	return &NameMap{items: make(map[string]mapEntry)}
}

func (m *NameMap) set(name string, entry mapEntry) {
	if _, exists := m.items[name]; !exists {
		m.order = append(m.order, name)
	}
	m.items[name] = entry
}

// Set registers a resolvable entry under name.
func (m *NameMap) Set(name string, reg Registration) {
	m.set(name, mapEntry{reg: reg, known: true})
}

// SetUnknown registers a placeholder for a name whose configured step
// identifier resolves to nothing executable.
func (m *NameMap) SetUnknown(name, kind string) {
	m.set(name, mapEntry{kind: kind})
}

// Delete removes a name, if present.
func (m *NameMap) Delete(name string) {
	if _, exists := m.items[name]; !exists {
		return
	}
	delete(m.items, name)
	for i, existing := range m.order {
		if existing == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Has reports whether name is present.
func (m *NameMap) Has(name string) bool {
	_, ok := m.items[name]
	return ok
}

// Names returns the names in insertion order.
func (m *NameMap) Names() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of entries.
func (m *NameMap) Len() int {
	return len(m.order)
}

// Clone returns an independent copy preserving order.
func (m *NameMap) Clone() *NameMap {
	clone := NewNameMap()
	for _, name := range m.order {
		clone.set(name, m.items[name])
	}
	return clone
}

func (m *NameMap) get(name string) (mapEntry, bool) {
	entry, ok := m.items[name]
	return entry, ok
}
