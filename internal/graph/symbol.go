// Package graph implements the commit-graph state engine: the sliding
// three-row window and symbol-derivation logic that turns a stream of
// (commit, parents, boundary) records into per-column glyph descriptors.
package graph

// Symbol is the flat per-column attribute record produced by the engine
// for a single commit's row. It carries no derived fields — every
// attribute is computed directly from the sliding window at derivation
// time and handed out by value.
type Symbol struct {
	Commit  bool
	Boundary bool
	Initial bool
	Merge   bool

	ContinuedDown   bool
	ContinuedUp     bool
	ContinuedRight  bool
	ContinuedLeft   bool
	ContinuedUpLeft bool

	ParentDown  bool
	ParentRight bool

	BelowCommit   bool
	Flanked       bool
	NextRight     bool
	MatchesCommit bool

	ShiftLeft    bool
	ContinueShift bool
	BelowShift   bool

	NewColumn bool
	Empty     bool

	Color int
}
