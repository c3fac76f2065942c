package projection

import (
	"strings"
	"unicode"
)

const compoundPrefix = "system_"

// Compound is the containment node for one system.
type Compound struct {
	ID         string `json:"id"`
	SystemName string `json:"system_name"`
}

// compoundTable maps system names to compound ids for one projection call.
type compoundTable struct {
	order  []Compound
	byName map[string]string
	byID   map[string]bool
}

func newCompoundTable() *compoundTable {
	return &compoundTable{
		byName: make(map[string]string),
		byID:   make(map[string]bool),
	}
}

// add registers a system name. A name whose sanitized id is already taken
// maps onto the existing compound.
func (t *compoundTable) add(system string) {
	if _, ok := t.byName[system]; ok {
		return
	}
	id := CompoundID(system)
	t.byName[system] = id
	if t.byID[id] {
		return
	}
	t.byID[id] = true
	t.order = append(t.order, Compound{ID: id, SystemName: system})
}

// lookup returns the compound id for a system, or "" when there is none.
func (t *compoundTable) lookup(system string) string {
	return t.byName[system]
}

// CompoundID returns the display id of the compound for a system name.
func CompoundID(system string) string {
	return compoundPrefix + Sanitize(system)
}

// Sanitize maps a display name onto an id-safe token. Letters, digits, '-'
// and '_' are kept; every other rune becomes '_'.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
