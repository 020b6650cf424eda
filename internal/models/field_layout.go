package models

import (
	"errors"
	"fmt"
	"strings"
)

// Field is a canonical access-log column.
type Field string

const (
	FieldTimestamp   Field = "timestamp"
	FieldElapsed     Field = "elapsed"
	FieldClientIP    Field = "client_ip"
	FieldStatusCode  Field = "status_code"
	FieldBytes       Field = "bytes"
	FieldMethod      Field = "method"
	FieldURL         Field = "url"
	FieldRFC931      Field = "rfc931"
	FieldHow         Field = "how"
	FieldContentType Field = "content_type"
)

// SkipField marks a column of the log format that is not used.
const SkipField = "-"

// CanonicalFields is the native squid access.log column order.
var CanonicalFields = []Field{
	FieldTimestamp,
	FieldElapsed,
	FieldClientIP,
	FieldStatusCode,
	FieldBytes,
	FieldMethod,
	FieldURL,
	FieldRFC931,
	FieldHow,
	FieldContentType,
}

var ErrInvalidFieldLayout = errors.New("invalid log field layout")

// FieldLayout maps every canonical field to its whitespace-separated column index.
type FieldLayout struct {
	index map[Field]int
	width int
}

// DefaultFieldLayout is the layout of squid's native log format.
func DefaultFieldLayout() FieldLayout {
	names := make([]string, len(CanonicalFields))
	for i, f := range CanonicalFields {
		names[i] = string(f)
	}
	layout, _ := NewFieldLayout(names)
	return layout
}

// NewFieldLayout builds a layout from positional column names. Every canonical field must
// appear exactly once; SkipField may fill columns that are not used.
func NewFieldLayout(names []string) (FieldLayout, error) {
	known := make(map[Field]bool, len(CanonicalFields))
	for _, f := range CanonicalFields {
		known[f] = true
	}

	layout := FieldLayout{index: make(map[Field]int, len(CanonicalFields))}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == SkipField {
			continue
		}
		field := Field(name)
		if !known[field] {
			return FieldLayout{}, fmt.Errorf("%w: unknown field %q at column %d", ErrInvalidFieldLayout, name, i)
		}
		if _, dup := layout.index[field]; dup {
			return FieldLayout{}, fmt.Errorf("%w: field %q appears twice", ErrInvalidFieldLayout, name)
		}
		layout.index[field] = i
		if i+1 > layout.width {
			layout.width = i + 1
		}
	}

	var missing []string
	for _, f := range CanonicalFields {
		if _, ok := layout.index[f]; !ok {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return FieldLayout{}, fmt.Errorf("%w: missing fields %s", ErrInvalidFieldLayout, strings.Join(missing, ", "))
	}

	return layout, nil
}

// Index returns the column of f.
func (l FieldLayout) Index(f Field) int {
	return l.index[f]
}

// Width is the minimum number of columns a well-formed line has.
func (l FieldLayout) Width() int {
	return l.width
}
