package graph

// Table is a pure, stateless mapping from a glyph Kind to the two
// display cells the caller prints for it.
type Table interface {
	Glyph(Kind) string
}

type tableFunc func(Kind) string

func (f tableFunc) Glyph(k Kind) string { return f(k) }

// BoxTable renders connectors with Unicode box-drawing characters. All
// four commit-marker kinds share a single plain glyph — distinguishing
// them visually is the Color Registry's job, not the glyph table's
// (the teacher's renderer uses the same single-glyph-plus-color
// approach for its commit marker).
var BoxTable Table = tableFunc(func(k Kind) string {
	switch k {
	case KindCommitBoundary, KindCommitInitial, KindCommitMerge, KindCommitNormal:
		return " o"
	case KindCrossMerge:
		return "─┼"
	case KindVerticalMerge:
		return "─┤"
	case KindCrossOver:
		return "─│"
	case KindVerticalBar:
		return " │"
	case KindTurnLeft:
		return "─┘"
	case KindMultiBranch:
		return "─┴"
	case KindHorizontalBar:
		return "──"
	case KindForks:
		return " ├"
	case KindTurnDownCross:
		return "─┌"
	case KindTurnDown:
		return " ┌"
	case KindMerge:
		return "─┐"
	case KindMultiMerge:
		return "─┬"
	default:
		return "  "
	}
})

// RoundedTable uses rounded corners for connectors and gives each
// commit-marker kind its own glyph (boundary, initial, merge, normal),
// the way Tig's graph-v2 does.
var RoundedTable Table = tableFunc(func(k Kind) string {
	switch k {
	case KindCommitBoundary:
		return " ◯"
	case KindCommitInitial:
		return " ◎"
	case KindCommitMerge:
		return " ●"
	case KindCommitNormal:
		return " ∙"
	case KindCrossMerge:
		return "─┼"
	case KindVerticalMerge:
		return "─┤"
	case KindCrossOver:
		return "─│"
	case KindVerticalBar:
		return " │"
	case KindTurnLeft:
		return "─╯"
	case KindMultiBranch:
		return "─┴"
	case KindHorizontalBar:
		return "──"
	case KindForks:
		return " ├"
	case KindTurnDownCross:
		return "─╭"
	case KindTurnDown:
		return " ╭"
	case KindMerge:
		return "─╮"
	case KindMultiMerge:
		return "─┬"
	default:
		return "  "
	}
})

// Glyph is a convenience for Table.Glyph(Classify(s)).
func Glyph(t Table, s Symbol) string {
	return t.Glyph(Classify(s))
}
