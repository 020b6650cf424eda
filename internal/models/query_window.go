package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidQueryWindow = errors.New("invalid query window")

// QueryWindow is the time range of a query in epoch seconds. Only events strictly
// between Start and End are returned.
type QueryWindow struct {
	Start int64
	End   int64
}

// NewQueryWindow validates start < end.
func NewQueryWindow(start, end int64) (QueryWindow, error) {
	if start >= end {
		return QueryWindow{}, fmt.Errorf("%w: start_time %d must be before end_time %d", ErrInvalidQueryWindow, start, end)
	}
	return QueryWindow{Start: start, End: end}, nil
}

// Contains reports Start < ts < End.
func (w QueryWindow) Contains(ts int64) bool {
	return ts > w.Start && ts < w.End
}

// StartTime is Start as a time.Time, used as the listing freshness bound.
func (w QueryWindow) StartTime() time.Time {
	return time.Unix(w.Start, 0)
}

// MarshalJSON encodes the window as [start, end].
func (w QueryWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64{w.Start, w.End})
}

// UnmarshalJSON decodes [start, end].
func (w *QueryWindow) UnmarshalJSON(data []byte) error {
	var pair [2]int64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	w.Start, w.End = pair[0], pair[1]
	return nil
}
