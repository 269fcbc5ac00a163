package dataset

import "fmt"

// ColumnDef declares a column's name and inferred element type as part
// of a dataset's schema.
type ColumnDef struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of column declarations for a dataset.
type Schema struct {
	Columns []ColumnDef
}

// Dataset is an ordered sequence of rows sharing a declared column
// schema. Datasets are read-only during evaluation: no component in this
// module mutates a Dataset's columns once constructed.
type Dataset struct {
	Schema Schema
	rows   int
	order  []string
	byName map[string]*Column
}

// New builds a Dataset from a set of columns, all of which must share the
// same length. Column names must be unique and are looked up
// case-sensitively (see DESIGN.md's case-sensitivity decision).
func New(columns ...*Column) (*Dataset, error) {
	ds := &Dataset{byName: make(map[string]*Column, len(columns))}
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("dataset: nil column at index %d", i)
		}
		if _, exists := ds.byName[c.Name]; exists {
			return nil, fmt.Errorf("dataset: duplicate column name %q", c.Name)
		}
		if i == 0 {
			ds.rows = c.Len()
		} else if c.Len() != ds.rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d", c.Name, c.Len(), ds.rows)
		}
		ds.byName[c.Name] = c
		ds.order = append(ds.order, c.Name)
		ds.Schema.Columns = append(ds.Schema.Columns, ColumnDef{Name: c.Name, Kind: inferKind(c)})
	}
	return ds, nil
}

func inferKind(c *Column) Kind {
	for _, v := range c.Values {
		if !v.IsMissing() {
			return v.Kind
		}
	}
	return KindMissing
}

// Len returns the dataset's row count.
func (d *Dataset) Len() int { return d.rows }

// Column returns the named column and whether it exists. Lookup is
// case-sensitive.
func (d *Dataset) Column(name string) (*Column, bool) {
	c, ok := d.byName[name]
	return c, ok
}

// HasColumn reports whether name is a declared column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// ColumnNames returns column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
