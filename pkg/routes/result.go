package routes

import (
	"sort"

	"github.com/agentstation/routemap/pkg/errors"
)

// Reason explains why a row was dropped.
type Reason string

// Drop reasons.
const (
	ReasonMalformed                 Reason = "malformed"
	ReasonUnknownAirline            Reason = "unknown airline"
	ReasonUnknownSourceAirport      Reason = "unknown source airport"
	ReasonUnknownDestinationAirport Reason = "unknown destination airport"
	ReasonUnknownEquipment          Reason = "unknown equipment"
	ReasonAirlineSentinel           Reason = "airline id is \\N"
	ReasonUnresolvedSource          Reason = "source airport name not found"
	ReasonUnresolvedDestination     Reason = "destination airport name not found"
)

// Result contains counts about one pass over the routes table.
type Result struct {
	Total     int // data rows read, header excluded
	Kept      int
	Dropped   int // rows dropped for a foreign key failure
	Malformed int // rows dropped for being too short, not included in Dropped
	Rewritten int // fields rewritten in place

	DropReasons   map[Reason]int
	MalformedRows []*errors.MalformedRowError
}

func newResult(total int) Result {
	return Result{Total: total, DropReasons: make(map[Reason]int)}
}

func (r *Result) drop(reason Reason) {
	r.Dropped++
	r.DropReasons[reason]++
}

func (r *Result) malformed(row, fields, required int) {
	r.Malformed++
	r.DropReasons[ReasonMalformed]++
	r.MalformedRows = append(r.MalformedRows, errors.NewMalformedRowError(row, fields, required))
}

// Reasons returns the drop reasons in sorted order.
func (r Result) Reasons() []Reason {
	out := make([]Reason, 0, len(r.DropReasons))
	for reason := range r.DropReasons {
		out = append(out, reason)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
