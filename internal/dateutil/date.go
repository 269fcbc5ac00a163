package dateutil

import "time"

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
}

// ParseFlexibleDate attempts to parse s as either an ISO-8601 date
// (YYYY-MM-DD) or the US locale convention (MM/DD/YYYY), returning the
// parsed date truncated to midnight UTC and true on success.
func ParseFlexibleDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
