package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryReservesDefaults(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 1, r.Len())
	assert.Len(t, r.Fills(), 2)
	assert.Equal(t, FillNone, r.Fills()[0].Kind)
	assert.Equal(t, FillPattern, r.Fills()[1].Kind)
	assert.Equal(t, PatternGray125, r.Fills()[1].Pattern)

	def, ok := r.Get(DefaultStyleId)
	require.True(t, ok)
	assert.Equal(t, CellStyle{}, def)
}

func TestInternDeduplicatesByCanonicalKey(t *testing.T) {
	r := NewRegistry()
	red := RGB(0xFFFF0000)

	s1 := CellStyle{Font: Font{Bold: true, Color: &red}}
	id1 := r.Intern(s1)

	s2 := CellStyle{Font: Font{Bold: true, Color: &red}}
	id2 := r.Intern(s2)

	assert.Equal(t, id1, id2, "styles equal by value but built from distinct pointers must dedupe")
	assert.Equal(t, 2, r.Len())
}

func TestNumFmtIDExcludedFromCanonicalKey(t *testing.T) {
	r := NewRegistry()
	id1 := 14
	id2 := 15
	s1 := CellStyle{NumFmt: BuiltIn(14), NumFmtID: &id1}
	s2 := CellStyle{NumFmt: BuiltIn(14), NumFmtID: &id2}

	assert.Equal(t, r.Intern(s1), r.Intern(s2))
}

func TestSetNumFmtClearsPreservedID(t *testing.T) {
	id := 14
	s := CellStyle{NumFmtID: &id}
	s2 := s.SetNumFmt(BuiltIn(9))
	assert.Nil(t, s2.NumFmtID)
	assert.Equal(t, BuiltIn(9), s2.NumFmt)
}

func TestCustomNumFmtIDsStartAt164(t *testing.T) {
	r := NewRegistry()
	r.Intern(CellStyle{NumFmt: Custom("0.0%")})
	r.Intern(CellStyle{NumFmt: Custom("0.0000")})
	r.Intern(CellStyle{NumFmt: Custom("0.0%")}) // duplicate, no new entry

	customs := r.CustomNumFmts()
	require.Len(t, customs, 2)
	assert.Equal(t, 164, r.CustomNumFmtID(0))
	assert.Equal(t, 165, r.CustomNumFmtID(1))
}

func TestFontDeduplicationByValueNotPointer(t *testing.T) {
	r := NewRegistry()
	blue1 := RGB(0xFF0000FF)
	blue2 := RGB(0xFF0000FF)

	r.Intern(CellStyle{Font: Font{Name: "Arial", Color: &blue1}})
	r.Intern(CellStyle{Font: Font{Name: "Arial", Color: &blue2}})

	assert.Len(t, r.Fonts(), 2, "default font plus one distinct custom font")
}

func TestBorderDeduplicationByValueNotPointer(t *testing.T) {
	r := NewRegistry()
	red1 := RGB(0xFFFF0000)
	red2 := RGB(0xFFFF0000)

	s1 := CellStyle{Border: Border{Left: BorderSide{Style: BorderThin, Color: &red1}}}
	id1 := r.Intern(s1)

	s2 := CellStyle{Border: Border{Left: BorderSide{Style: BorderThin, Color: &red2}}}
	id2 := r.Intern(s2)

	assert.Equal(t, id1, id2, "styles equal by value but built from distinct *Color pointers on Border sides must dedupe")
	assert.Equal(t, 2, r.Len())
}

func TestFillIndexLookup(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.FillIndex(Fill{Kind: FillNone}))
	assert.Equal(t, -1, r.FillIndex(Fill{Kind: FillSolid, Solid: RGB(1)}))
}

func TestBorderDefaultEquality(t *testing.T) {
	assert.True(t, Border{}.IsDefault())
	b := Border{Left: BorderSide{Style: BorderThin}}
	assert.False(t, b.IsDefault())
}

func TestAlignmentDefault(t *testing.T) {
	assert.True(t, Alignment{}.IsDefault())
	assert.False(t, Alignment{WrapText: true}.IsDefault())
}
