package model

// RecordWidth is the fixed number of numeric fields per event row.
const RecordWidth = 10

// Column indices within an event row. The layout is fixed and never
// reordered: eventID, position x/y/z, normalized momentum x/y/z,
// incident energy, detector-1 deposit, detector-2 deposit.
const (
	ColEventID  = 0
	ColPosition = 1 // columns 1-3
	ColMomentum = 4 // columns 4-6
	ColEnergy   = 7 // columns 7-9
)

// EventMatrix is the ordered concatenation of event rows from all valid
// blocks of one source file, in scan order. Rows are stored in a flat
// backing slice with a stride of RecordWidth.
type EventMatrix struct {
	data []float64
	rows int
}

// NewEventMatrix pre-allocates capacity for the given number of rows.
func NewEventMatrix(rows int) *EventMatrix {
	return &EventMatrix{data: make([]float64, 0, rows*RecordWidth)}
}

// Append adds one event row at the current write cursor.
func (m *EventMatrix) Append(row [RecordWidth]float64) {
	m.data = append(m.data, row[:]...)
	m.rows++
}

// Rows returns the number of event rows.
func (m *EventMatrix) Rows() int {
	return m.rows
}

// Row returns the i-th event row. The returned slice aliases the backing
// store and must not be retained across Append calls.
func (m *EventMatrix) Row(i int) []float64 {
	return m.data[i*RecordWidth : (i+1)*RecordWidth]
}

// ComponentTriples extracts three adjacent columns starting at col as a
// flat sequence of per-event triples, the layout of the 3xN artifact
// arrays.
func (m *EventMatrix) ComponentTriples(col int) []float64 {
	out := make([]float64, 0, m.rows*3)
	for i := 0; i < m.rows; i++ {
		r := m.Row(i)
		out = append(out, r[col], r[col+1], r[col+2])
	}
	return out
}

// EventIDs extracts the event identifier column as signed integers.
func (m *EventMatrix) EventIDs() []int64 {
	out := make([]int64, m.rows)
	for i := 0; i < m.rows; i++ {
		out[i] = int64(m.Row(i)[ColEventID])
	}
	return out
}
