package collate

import "fmt"

// IntMat is a dense row-major matrix of int64 token values with shape
// [Rows x Cols]. Rows correspond to input examples in their original order.
type IntMat struct {
	Rows, Cols int
	Data       []int64
}

// Row returns row i as a subslice of the backing storage.
func (m IntMat) Row(i int) []int64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// At returns the element at row i, column j.
func (m IntMat) At(i, j int) int64 {
	return m.Data[i*m.Cols+j]
}

// Batch is the materialized result over N examples. All fields share the
// leading dimension N; each field's second dimension is that field's own
// batch-local maximum length. Generation fields are zero-valued when the
// collator does not emit a generation prompt.
type Batch struct {
	DiffIDs  IntMat
	DiffMask IntMat

	MsgIDs    IntMat
	MsgMask   IntMat
	MsgLabels IntMat

	GenerationIDs  IntMat
	GenerationMask IntMat
}

// stackRows materializes equal-length padded rows into one matrix.
func stackRows(rows [][]int) (IntMat, error) {
	if len(rows) == 0 {
		return IntMat{}, newInvalidInput("collate: cannot stack zero rows")
	}
	cols := len(rows[0])
	m := IntMat{Rows: len(rows), Cols: cols, Data: make([]int64, len(rows)*cols)}
	for i, row := range rows {
		if len(row) != cols {
			return IntMat{}, newInvalidInput(fmt.Sprintf("collate: ragged stack, row %d has length %d, want %d", i, len(row), cols))
		}
		dst := m.Data[i*cols : (i+1)*cols]
		for j, v := range row {
			dst[j] = int64(v)
		}
	}
	return m, nil
}
