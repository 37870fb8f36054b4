package style

import (
	"sort"

	"golang.org/x/exp/maps"
)

// StyleRegistry is an append-only, insertion-ordered map from a CellStyle's
// canonical key to its StyleId, plus the indexed vectors of distinct
// Fonts, Fills, Borders, and NumFmts every style references (spec.md §3).
// Distinct components are ordered by first occurrence. Grounded on
// adnsv-go-xl/xl/writer.go's Writer.fonts/FindFont pattern (a slice plus a
// linear/keyed lookup, appending only on first sight), generalized from a
// single component (fonts) to all four and from "first occurrence among
// this run's xfs" to a long-lived, queryable registry.
type StyleRegistry struct {
	styles    []CellStyle
	byKey     map[string]StyleId
	fonts     []Font
	fontIndex map[string]int
	fills     []Fill
	fillIndex map[string]int
	borders   []Border
	borderIdx map[string]int
	numFmts   []NumFmt
	nextCustomID int
}

// NewRegistry builds a StyleRegistry pre-populated with the workbook
// default style at index 0 and the two reserved fills (none, gray125) at
// fill indices 0 and 1, per spec.md §3's StyleRegistry invariant.
func NewRegistry() *StyleRegistry {
	r := &StyleRegistry{
		byKey:        make(map[string]StyleId),
		fontIndex:    make(map[string]int),
		fillIndex:    make(map[string]int),
		borderIdx:    make(map[string]int),
		nextCustomID: 164,
	}
	r.fills = append(r.fills, reservedFills[0], reservedFills[1])
	r.fillIndex[reservedFills[0].key()] = 0
	r.fillIndex[reservedFills[1].key()] = 1

	def := CellStyle{}
	r.internComponents(def)
	r.styles = append(r.styles, def)
	r.byKey[def.canonicalKey()] = DefaultStyleId
	return r
}

// Intern returns the StyleId for s, allocating a new one (and interning
// its Font/Fill/Border/NumFmt components) on first occurrence.
func (r *StyleRegistry) Intern(s CellStyle) StyleId {
	key := s.canonicalKey()
	if id, ok := r.byKey[key]; ok {
		return id
	}
	r.internComponents(s)
	id := StyleId(len(r.styles))
	r.styles = append(r.styles, s)
	r.byKey[key] = id
	return id
}

func (r *StyleRegistry) internComponents(s CellStyle) {
	if _, ok := r.fontIndex[s.Font.key()]; !ok {
		r.fontIndex[s.Font.key()] = len(r.fonts)
		r.fonts = append(r.fonts, s.Font)
	}
	if _, ok := r.fillIndex[s.Fill.key()]; !ok {
		r.fillIndex[s.Fill.key()] = len(r.fills)
		r.fills = append(r.fills, s.Fill)
	}
	if _, ok := r.borderIdx[s.Border.key()]; !ok {
		r.borderIdx[s.Border.key()] = len(r.borders)
		r.borders = append(r.borders, s.Border)
	}
	if s.NumFmt.Kind == NumFmtCustom {
		found := false
		for _, nf := range r.numFmts {
			if nf.Kind == NumFmtCustom && nf.Code == s.NumFmt.Code {
				found = true
				break
			}
		}
		if !found {
			r.numFmts = append(r.numFmts, s.NumFmt)
		}
	}
}

// Get returns the CellStyle for id, and false if id is out of range.
func (r *StyleRegistry) Get(id StyleId) (CellStyle, bool) {
	if int(id) < 0 || int(id) >= len(r.styles) {
		return CellStyle{}, false
	}
	return r.styles[id], true
}

// Len returns the number of distinct styles interned, including the
// default at index 0.
func (r *StyleRegistry) Len() int { return len(r.styles) }

// Fonts returns the distinct fonts in first-occurrence order.
func (r *StyleRegistry) Fonts() []Font { return r.fonts }

// FontIndex returns the index of font f within Fonts(), or -1 if absent.
func (r *StyleRegistry) FontIndex(f Font) int {
	if idx, ok := r.fontIndex[f.key()]; ok {
		return idx
	}
	return -1
}

// Fills returns the distinct fills in first-occurrence order; index 0 is
// always "none" and index 1 is always the gray125 pattern.
func (r *StyleRegistry) Fills() []Fill { return r.fills }

// FillIndex returns the index of fill f within Fills(), or -1 if absent.
func (r *StyleRegistry) FillIndex(f Fill) int {
	if idx, ok := r.fillIndex[f.key()]; ok {
		return idx
	}
	return -1
}

// Borders returns the distinct borders in first-occurrence order.
func (r *StyleRegistry) Borders() []Border { return r.borders }

// BorderIndex returns the index of border b within Borders(), or -1 if
// absent.
func (r *StyleRegistry) BorderIndex(b Border) int {
	if idx, ok := r.borderIdx[b.key()]; ok {
		return idx
	}
	return -1
}

// CustomNumFmts returns the distinct custom number formats in
// first-occurrence order; their assigned numFmtId starts at 164
// (CustomNumFmtID reports the id for a given index).
func (r *StyleRegistry) CustomNumFmts() []NumFmt { return r.numFmts }

// CustomNumFmtID returns the numFmtId assigned to the i'th entry of
// CustomNumFmts().
func (r *StyleRegistry) CustomNumFmtID(i int) int {
	return r.nextCustomID + i
}

// Styles returns every interned style in insertion (StyleId) order.
func (r *StyleRegistry) Styles() []CellStyle { return r.styles }

// CanonicalKeys returns every canonical style key currently interned, in
// sorted order — a deterministic view over byKey for diagnostics and
// tests, since map iteration order is not itself deterministic. Grounded
// on adnsv-go-xl/xl/writer.go's enumerate() helper (maps.Keys + sort
// before iterating a map that must produce reproducible output).
func (r *StyleRegistry) CanonicalKeys() []string {
	keys := maps.Keys(r.byKey)
	sort.Strings(keys)
	return keys
}
