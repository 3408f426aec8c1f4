package graph

// Row is an ordered, indexable, mutable sequence of Columns. All three
// rows of the engine's sliding window have the same length at all times
// outside expansion/collapse.
type Row struct {
	Columns []Column
}

// Size returns the number of columns in the row.
func (r *Row) Size() int {
	return len(r.Columns)
}

// findColumnByID returns the first index whose column has id; if none
// match, the first empty index; if no empties, row.Size() (an
// insertion point past the end). A matching id always wins over an
// earlier empty slot.
func findColumnByID(row *Row, id string) int {
	free := row.Size()
	for i := range row.Columns {
		if !row.Columns[i].HasCommit() {
			if free == row.Size() {
				free = i
			}
		} else if *row.Columns[i].ID == id {
			return i
		}
	}
	return free
}

// findFreeColumn returns the first empty index, or row.Size().
func findFreeColumn(row *Row) int {
	for i := range row.Columns {
		if !row.Columns[i].HasCommit() {
			return i
		}
	}
	return row.Size()
}

// insertColumn creates a new column with the given id and the engine's
// current boundary flag, inserting at pos (or appending if pos is at
// or past the end).
func (e *Engine) insertColumn(row *Row, pos int, id *string) {
	col := Column{ID: id}
	col.Symbol.Boundary = e.isBoundary

	if pos < row.Size() {
		row.Columns = append(row.Columns, Column{})
		copy(row.Columns[pos+1:], row.Columns[pos:])
		row.Columns[pos] = col
	} else {
		row.Columns = append(row.Columns, col)
	}
}

// commitIsInRow reports whether id occupies some column of row.
func commitIsInRow(id string, row *Row) bool {
	for i := range row.Columns {
		if row.Columns[i].HasCommit() && *row.Columns[i].ID == id {
			return true
		}
	}
	return false
}

// rowClearCommit clears id from every column of row that carries it.
func rowClearCommit(row *Row, id string) {
	for i := range row.Columns {
		if row.Columns[i].HasCommit() && *row.Columns[i].ID == id {
			row.Columns[i].ID = nil
		}
	}
}

func (r *Row) pop() {
	r.Columns = r.Columns[:len(r.Columns)-1]
}
