package graph

// Engine owns the three-row sliding window (previous, current, next)
// together with the parents buffer and color registry, and exposes a
// single advance operation, Consume, which folds the spec's "render
// parents" step into one call: a commit that arrives with zero parents
// still gets a single empty parent column injected here so expand and
// collapse bookkeeping stays consistent (see the zero-parent render
// path note in SPEC_FULL.md).
type Engine struct {
	prevRow, row, nextRow Row
	parents               Row

	position     int
	prevPosition int

	id         string
	isBoundary bool
	hasParents bool

	colors *colorRegistry
}

// New returns an Engine with an empty window, ready to consume the
// first commit of a topologically-ordered stream.
func New() *Engine {
	return &Engine{colors: newColorRegistry()}
}

// Consume advances the engine by one commit and returns the Symbol
// vector for that commit's row. Length equals the window width after
// expansion but before the post-emit collapse (the engine's output
// contract).
func (e *Engine) Consume(commitID string, parentIDs []string, isBoundary bool) []Symbol {
	e.position = findColumnByID(&e.row, commitID)
	e.id = commitID
	e.isBoundary = isBoundary

	e.parents = Row{}
	for _, p := range parentIDs {
		id := p
		e.insertColumn(&e.parents, e.parents.Size(), &id)
	}
	e.hasParents = len(parentIDs) > 0
	if e.parents.Size() == 0 {
		e.insertColumn(&e.parents, e.parents.Size(), nil)
	}

	e.expand()
	e.generateNextRow()
	symbols := e.generateSymbols()
	e.commitNextRow()

	e.parents = Row{}
	e.position = 0
	e.collapse()

	debugAssertEqual(e.prevRow.Size(), e.row.Size(), "prevRow/row width mismatch after consume")
	debugAssertEqual(e.row.Size(), e.nextRow.Size(), "row/nextRow width mismatch after consume")

	return symbols
}

// expand appends empty columns to all three rows until the commit's
// position and every staged parent have a home column.
func (e *Engine) expand() {
	for e.position+e.parents.Size() > e.row.Size() {
		e.insertColumn(&e.prevRow, e.prevRow.Size(), nil)
		e.insertColumn(&e.row, e.row.Size(), nil)
		e.insertColumn(&e.nextRow, e.nextRow.Size(), nil)
	}
}

// collapse pops trailing empty columns from all three rows, leaving a
// row of width 1 at minimum.
func (e *Engine) collapse() {
	for e.row.Size() > 1 && !e.row.Columns[e.row.Size()-1].HasCommit() {
		e.prevRow.pop()
		e.row.pop()
		e.nextRow.pop()
	}
}

func (e *Engine) generateNextRow() {
	rowClearCommit(&e.nextRow, e.id)
	e.insertParents()
	e.removeCollapsedColumns()
	e.fillEmptyColumns()
}

// insertParents places each staged parent into a free nextRow column,
// growing all three rows when the last column is already occupied and
// no earlier free slot exists.
func (e *Engine) insertParents() {
	for i := range e.parents.Columns {
		p := e.parents.Columns[i]
		if !p.HasCommit() {
			continue
		}

		match := findFreeColumn(&e.nextRow)
		if match == e.nextRow.Size() && e.nextRow.Columns[e.nextRow.Size()-1].HasCommit() {
			e.insertColumn(&e.nextRow, e.nextRow.Size(), p.ID)
			e.insertColumn(&e.row, e.row.Size(), nil)
			e.insertColumn(&e.prevRow, e.prevRow.Size(), nil)
			continue
		}
		e.nextRow.Columns[match].ID = p.ID
		e.nextRow.Columns[match].Symbol = p.Symbol
	}
}

// removeCollapsedColumns folds duplicate lanes back into their left
// neighbor, scanning right-to-left so an index shift from one collapse
// never disturbs an index not yet visited.
func (e *Engine) removeCollapsedColumns() {
	row := &e.nextRow
	for i := row.Size() - 1; i >= 1; i-- {
		if i == e.position || i == e.position+1 {
			continue
		}
		if row.Columns[i].HasCommit() && *row.Columns[i].ID == e.id {
			continue
		}
		if !sameID(row.Columns[i].ID, row.Columns[i-1].ID) {
			continue
		}
		if commitIsInRowPtr(row.Columns[i].ID, &e.parents) && !e.prevRow.Columns[i].HasCommit() {
			continue
		}

		if !sameID(row.Columns[i-1].ID, e.prevRow.Columns[i-1].ID) || e.prevRow.Columns[i-1].Symbol.ShiftLeft {
			if i+1 >= row.Size() {
				row.Columns[i] = Column{}
			} else {
				row.Columns[i] = row.Columns[i+1]
			}
		}
	}
}

// fillEmptyColumns propagates lane identities leftward through gaps a
// collapse just created.
func (e *Engine) fillEmptyColumns() {
	row := &e.nextRow
	for i := row.Size() - 2; i >= 0; i-- {
		if !row.Columns[i].HasCommit() {
			row.Columns[i] = row.Columns[i+1]
		}
	}
}

func (e *Engine) commitNextRow() {
	for i := range e.row.Columns {
		e.prevRow.Columns[i] = e.row.Columns[i]

		if i == e.position && commitsInRow(&e.parents) > 0 {
			e.prevRow.Columns[i] = e.nextRow.Columns[i]
		}
		if !e.prevRow.Columns[i].HasCommit() {
			e.prevRow.Columns[i] = e.nextRow.Columns[i]
		}
		e.row.Columns[i] = e.nextRow.Columns[i]
	}
	e.prevPosition = e.position
}

func (e *Engine) generateSymbols() []Symbol {
	commits := commitsInRow(&e.parents)
	initial := commits < 1
	merge := commits > 1

	symbols := make([]Symbol, e.row.Size())
	for pos := 0; pos < e.row.Size(); pos++ {
		col := e.row.Columns[pos]
		var sym Symbol

		sym.Commit = pos == e.position
		sym.Boundary = sym.Commit && e.nextRow.Columns[pos].Symbol.Boundary
		sym.Initial = initial
		sym.Merge = merge

		sym.ContinuedDown = continuedDown(&e.row, &e.nextRow, pos)
		sym.ContinuedUp = continuedDown(&e.prevRow, &e.row, pos)
		sym.ContinuedRight = continuedRight(&e.row, pos, e.position)
		sym.ContinuedLeft = continuedLeft(&e.row, pos, e.position)
		sym.ContinuedUpLeft = continuedLeft(&e.prevRow, pos, e.prevRow.Size())

		sym.ParentDown = parentDown(&e.parents, &e.nextRow, pos)
		sym.ParentRight = pos > e.position && parentRight(&e.parents, &e.row, &e.nextRow, pos)

		sym.BelowCommit = e.belowCommit(pos)
		sym.Flanked = flanked(&e.row, pos, e.position, e.id)
		sym.NextRight = continuedRight(&e.nextRow, pos, 0)
		sym.MatchesCommit = col.HasCommit() && *col.ID == e.id

		sym.ShiftLeft = computeShiftLeft(&e.row, &e.prevRow, pos)
		if pos+1 < e.row.Size() {
			sym.ContinueShift = computeShiftLeft(&e.row, &e.prevRow, pos+1)
		}
		sym.BelowShift = e.prevRow.Columns[pos].Symbol.ShiftLeft

		sym.NewColumn = newColumn(&e.row, &e.prevRow, pos)
		sym.Empty = !col.HasCommit()

		var colorKey string
		if col.HasCommit() {
			colorKey = *col.ID
		} else if e.nextRow.Columns[pos].HasCommit() {
			colorKey = *e.nextRow.Columns[pos].ID
		}
		sym.Color = e.colors.colorOf(colorKey)

		symbols[pos] = sym
	}

	e.colors.release(e.id)
	return symbols
}

func (e *Engine) belowCommit(pos int) bool {
	if pos != e.prevPosition {
		return false
	}
	return sameID(e.row.Columns[pos].ID, e.prevRow.Columns[pos].ID)
}

// --- column-predicate helpers: pure functions of the rows they're passed ---

func continuedDown(row, next *Row, pos int) bool {
	if !sameID(row.Columns[pos].ID, next.Columns[pos].ID) {
		return false
	}
	return !row.Columns[pos].Symbol.ShiftLeft
}

func computeShiftLeft(row, prevRow *Row, pos int) bool {
	if !row.Columns[pos].HasCommit() {
		return false
	}
	for i := pos - 1; i >= 0; i-- {
		if !row.Columns[i].HasCommit() {
			continue
		}
		if !sameID(row.Columns[i].ID, row.Columns[pos].ID) {
			continue
		}
		if !continuedDown(prevRow, row, i) {
			return true
		}
		break
	}
	return false
}

func newColumn(row, prevRow *Row, pos int) bool {
	if !prevRow.Columns[pos].HasCommit() {
		return true
	}
	for i := pos; i < row.Size(); i++ {
		if sameID(row.Columns[pos].ID, prevRow.Columns[i].ID) {
			return false
		}
	}
	return true
}

func continuedRight(row *Row, pos, commitPos int) bool {
	end := row.Size()
	if pos < commitPos {
		end = commitPos
	}
	for i := pos + 1; i < end; i++ {
		if sameID(row.Columns[pos].ID, row.Columns[i].ID) {
			return true
		}
	}
	return false
}

func continuedLeft(row *Row, pos, commitPos int) bool {
	start := 0
	if pos >= commitPos {
		start = commitPos
	}
	for i := start; i < pos; i++ {
		if !row.Columns[i].HasCommit() {
			continue
		}
		if sameID(row.Columns[pos].ID, row.Columns[i].ID) {
			return true
		}
	}
	return false
}

func parentDown(parents, next *Row, pos int) bool {
	for i := range parents.Columns {
		if !parents.Columns[i].HasCommit() {
			continue
		}
		if sameID(parents.Columns[i].ID, next.Columns[pos].ID) {
			return true
		}
	}
	return false
}

func parentRight(parents, row, next *Row, pos int) bool {
	for pi := range parents.Columns {
		if !parents.Columns[pi].HasCommit() {
			continue
		}
		for i := pos + 1; i < next.Size(); i++ {
			if !sameID(parents.Columns[pi].ID, next.Columns[i].ID) {
				continue
			}
			if !sameID(parents.Columns[pi].ID, row.Columns[i].ID) {
				return true
			}
		}
	}
	return false
}

func flanked(row *Row, pos, commitPos int, commitID string) bool {
	start, end := pos+1, row.Size()
	if pos < commitPos {
		start, end = 0, pos
	}
	for i := start; i < end; i++ {
		if row.Columns[i].HasCommit() && *row.Columns[i].ID == commitID {
			return true
		}
	}
	return false
}

func commitsInRow(row *Row) int {
	n := 0
	for i := range row.Columns {
		if row.Columns[i].HasCommit() {
			n++
		}
	}
	return n
}

func commitIsInRowPtr(id *string, row *Row) bool {
	if id == nil {
		return false
	}
	return commitIsInRow(*id, row)
}
