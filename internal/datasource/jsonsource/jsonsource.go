// Package jsonsource is a reference Dataset loader for ad hoc fixtures
// and the command-line tool's `run`/`watch` commands: a JSON array of
// flat row objects. It exists to give the CLI a live, file-backed path
// without reaching for the spreadsheet/CSV ingestion this module leaves
// to external tooling.
package jsonsource

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/dateutil"
)

// Load reads a JSON array of objects from r and builds a Dataset. Column
// names are the union of every row's keys, ordered by the first row in
// which each appears; keys new in the same row are taken in alphabetical
// order, since JSON object key order is not kept. A row missing a key
// yields Missing for that column. A column becomes a
// date column only if every non-null value it holds is a string parsing
// as a flexible date; otherwise values keep their native JSON type.
func Load(r io.Reader) (*dataset.Dataset, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("jsonsource: decoding rows: %w", err)
	}

	var order []string
	seen := make(map[string]bool)
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}

	raw := make(map[string][]any, len(order))
	for _, name := range order {
		cells := make([]any, len(rows))
		for i, row := range rows {
			cells[i] = row[name]
		}
		raw[name] = cells
	}

	cols := make([]*dataset.Column, len(order))
	for i, name := range order {
		cols[i] = dataset.NewColumn(name, classify(raw[name]))
	}
	return dataset.New(cols...)
}

func classify(cells []any) []dataset.Value {
	allDates := true
	anyPresent := false
	for _, c := range cells {
		if c == nil {
			continue
		}
		anyPresent = true
		s, ok := c.(string)
		if !ok {
			allDates = false
			continue
		}
		if _, ok := dateutil.ParseFlexibleDate(s); !ok {
			allDates = false
		}
	}
	if !anyPresent {
		allDates = false
	}

	values := make([]dataset.Value, len(cells))
	for i, c := range cells {
		if c == nil {
			values[i] = dataset.Missing()
			continue
		}
		switch v := c.(type) {
		case string:
			if allDates {
				t, _ := dateutil.ParseFlexibleDate(v)
				values[i] = dataset.Date(t)
			} else {
				values[i] = dataset.Str(v)
			}
		case float64:
			values[i] = dataset.Num(v)
		case bool:
			values[i] = dataset.Bool(v)
		default:
			values[i] = dataset.Str(fmt.Sprintf("%v", v))
		}
	}
	return values
}
