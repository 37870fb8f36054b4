package style

// FillKind discriminates the cell-fill variants spec.md §3 defines:
// None, Solid(Color), or Pattern(fg, bg, pattern).
type FillKind int

const (
	FillNone FillKind = iota
	FillSolid
	FillPattern
)

// PatternType enumerates the OOXML patternFill patternType values this
// model distinguishes; values beyond these are preserved at the xlstyles
// layer as a raw string rather than rejected.
type PatternType string

const (
	PatternGray125 PatternType = "gray125"
	PatternDarkGray PatternType = "darkGray"
	PatternLightGray PatternType = "lightGray"
)

// Fill is a resolved cell background fill.
type Fill struct {
	Kind    FillKind
	Solid   Color       // valid when Kind == FillSolid
	Pattern PatternType // valid when Kind == FillPattern
	FG, BG  Color       // valid when Kind == FillPattern
}

// reservedFills are the two fills every StyleRegistry pre-populates at
// indices 0 and 1, per the OOXML spec's own requirement that a styles.xml
// always begin with "none" and the "gray125" pattern (spec.md §3
// StyleRegistry invariant), mirrored from adnsv-go-xl/xl/writer.go's
// writeStyles always emitting fill index 0 as patternType="none" first.
var reservedFills = [2]Fill{
	{Kind: FillNone},
	{Kind: FillPattern, Pattern: PatternGray125},
}
