package routes

import (
	"strings"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/table"
)

// RepairAirportIDs resolves \N source and destination airport IDs through the
// airport name index. A row is dropped when a \N ID has no matching name; the
// destination is not examined once the source has failed. Rows too short for
// the airport columns are dropped as malformed.
func RepairAirportIDs(routes *table.Table, names NameIndex, layout Layout) (*table.Table, Result) {
	out := routes.Empty()
	result := newResult(routes.Len())
	width := layout.repairWidth()

	for i, src := range routes.Rows {
		if len(src) < width {
			result.malformed(i+1, len(src), width)
			continue
		}

		row := append([]string(nil), src...)
		srcFixed, ok := resolve(row, layout.SourceID, layout.SourceName, names)
		if !ok {
			result.drop(ReasonUnresolvedSource)
			continue
		}
		dstFixed, ok := resolve(row, layout.DestinationID, layout.DestinationName, names)
		if !ok {
			result.drop(ReasonUnresolvedDestination)
			continue
		}
		if srcFixed {
			result.Rewritten++
		}
		if dstFixed {
			result.Rewritten++
		}
		out.Append(row)
	}

	result.Kept = out.Len()
	return out, result
}

// resolve rewrites row[idCol] from the name index when it holds the sentinel.
// It reports whether the field was rewritten and whether the ID is usable.
func resolve(row []string, idCol, nameCol int, names NameIndex) (bool, bool) {
	if row[idCol] != constants.UnknownIDSentinel {
		return false, true
	}
	id, ok := names[row[nameCol]]
	if !ok {
		return false, false
	}
	row[idCol] = id
	return true, true
}

// RemoveUnknownAirlines drops rows whose airline ID is the \N sentinel. Rows
// too short to hold the airline ID are kept.
func RemoveUnknownAirlines(routes *table.Table, layout Layout) (*table.Table, Result) {
	out := routes.Empty()
	result := newResult(routes.Len())

	for _, row := range routes.Rows {
		if v, ok := table.Field(row, layout.AirlineID); ok && v == constants.UnknownIDSentinel {
			result.drop(ReasonAirlineSentinel)
			continue
		}
		out.Append(append([]string(nil), row...))
	}

	result.Kept = out.Len()
	return out, result
}

// NormalizeCodeshare rewrites the codeshare flag: blank becomes "0" and "Y"
// becomes "1". Other values and rows too short for the flag are unchanged.
func NormalizeCodeshare(routes *table.Table, layout Layout) (*table.Table, Result) {
	out := routes.Clone()
	result := newResult(routes.Len())

	for _, row := range out.Rows {
		v, ok := table.Field(row, layout.Codeshare)
		if !ok {
			continue
		}
		switch strings.TrimSpace(v) {
		case "":
			row[layout.Codeshare] = constants.CodeshareNo
		case "Y":
			row[layout.Codeshare] = constants.CodeshareYes
		default:
			continue
		}
		result.Rewritten++
	}

	result.Kept = out.Len()
	return out, result
}
