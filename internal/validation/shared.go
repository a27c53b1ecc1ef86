package validation

import (
	"maps"
	"slices"
	"strings"
)

// Error collects the rejected fields of a request, keyed by JSON field name.
type Error struct {
	Fields map[string]string
}

// Error lists the field messages ordered by field name so responses are stable.
func (e *Error) Error() string {
	var b strings.Builder
	for i, field := range slices.Sorted(maps.Keys(e.Fields)) {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(e.Fields[field])
	}
	return b.String()
}

// Has reports whether field was rejected.
func (e *Error) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// fieldErrors returns nil when nothing was rejected.
func fieldErrors(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}
