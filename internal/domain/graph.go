package domain

import (
	m "modconcat.dev/pkg/modconcat/internal/model"
)

// Graph is the ordered registry of discovered modules. Identifiers are
// assigned in discovery order starting at 0 for the entry, and a path is
// never registered twice, so cycles terminate.
type Graph struct {
	records []m.ModuleRecord
	index   map[m.Path]m.ModuleID
	cursor  int
}

// NewGraph creates a graph holding only entry, with identifier 0.
func NewGraph(entry m.Path) *Graph {
	g := &Graph{index: make(map[m.Path]m.ModuleID)}
	g.Reserve(entry)

	return g
}

// Reserve registers path and returns its identifier. The boolean is false
// when path was already known.
func (g *Graph) Reserve(path m.Path) (m.ModuleID, bool) {
	if id, ok := g.index[path]; ok {
		return id, false
	}

	id := m.ModuleID(len(g.records))
	g.records = append(g.records, m.ModuleRecord{ID: id, Path: path})
	g.index[path] = id

	return id, true
}

// Lookup returns the identifier of a registered path.
func (g *Graph) Lookup(path m.Path) (m.ModuleID, bool) {
	id, ok := g.index[path]
	return id, ok
}

// NextPending returns the lowest-numbered unprocessed module.
func (g *Graph) NextPending() (m.ModuleRecord, bool) {
	g.advance()

	if g.cursor >= len(g.records) {
		return m.ModuleRecord{}, false
	}

	return g.records[g.cursor], true
}

// MarkProcessed flags id as emitted.
func (g *Graph) MarkProcessed(id m.ModuleID) {
	if int(id) < 0 || int(id) >= len(g.records) {
		return
	}

	g.records[id].Processed = true
	g.advance()
}

func (g *Graph) advance() {
	for g.cursor < len(g.records) && g.records[g.cursor].Processed {
		g.cursor++
	}
}

// Exhausted reports whether every registered module has been processed.
func (g *Graph) Exhausted() bool {
	g.advance()
	return g.cursor >= len(g.records)
}

// Len returns the number of registered modules.
func (g *Graph) Len() int {
	return len(g.records)
}

// Files returns the registered paths in identifier order.
func (g *Graph) Files() []m.Path {
	files := make([]m.Path, len(g.records))
	for i, record := range g.records {
		files[i] = record.Path
	}

	return files
}
