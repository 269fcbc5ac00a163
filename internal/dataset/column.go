package dataset

// Column is a dense, ordered sequence of Values, one per dataset row.
// Element type is uniform by convention but missing/error positions are
// permitted regardless of the column's nominal type.
type Column struct {
	Name   string
	Values []Value
}

// NewColumn builds a named Column from a slice of Values.
func NewColumn(name string, values []Value) *Column {
	return &Column{Name: name, Values: values}
}

// Broadcast builds a Column of length n where every row holds v.
func Broadcast(name string, v Value, n int) *Column {
	vals := make([]Value, n)
	for i := range vals {
		vals[i] = v
	}
	return &Column{Name: name, Values: vals}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int { return len(c.Values) }

// At returns the value at row i, or Missing if i is out of range.
func (c *Column) At(i int) Value {
	if i < 0 || i >= len(c.Values) {
		return Missing()
	}
	return c.Values[i]
}
