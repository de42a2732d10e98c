package regions

import (
	"sort"
	"strings"
)

var _ Table = (*StaticTable)(nil)

// Table maps lowercase region names to the query fragment the service
// expects for that region.
type Table interface {
	Has(name string) bool
	Fragment(name string) string
	Names() []string
}

// StaticTable is an immutable Table.
type StaticTable struct {
	fragments map[string]string
}

// New builds a table from name to fragment pairs. Names are lowercased.
func New(fragments map[string]string) *StaticTable {
	m := make(map[string]string, len(fragments))
	for name, fragment := range fragments {
		m[Normalize(name)] = fragment
	}
	return &StaticTable{fragments: m}
}

// Default returns the regions the statistics service serves.
func Default() *StaticTable {
	return New(map[string]string{
		"global": "",
		"na":     "&specificRegion=NorthAmerica",
		"eu":     "&specificRegion=Europe",
		"sa":     "&specificRegion=SouthAmerica",
		"asia":   "&specificRegion=Asia",
		"oce":    "&specificRegion=Oceania",
		"jp":     "&specificRegion=Japan",
	})
}

// Normalize lowercases a user supplied region name. Surrounding whitespace
// is kept, so " na" does not name a region.
func Normalize(name string) string {
	return strings.ToLower(name)
}

func (t *StaticTable) Has(name string) bool {
	_, ok := t.fragments[name]
	return ok
}

func (t *StaticTable) Fragment(name string) string {
	return t.fragments[name]
}

// Names lists the supported region names in sorted order.
func (t *StaticTable) Names() []string {
	out := make([]string, 0, len(t.fragments))
	for name := range t.fragments {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
