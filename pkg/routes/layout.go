// Package routes checks and repairs the foreign keys of the routes table
// against the airline, airport and airplane reference tables.
//
// Routes rows are addressed by position. Fields are compared verbatim; only
// the reference key sets are trimmed when they are built.
package routes

import (
	"github.com/agentstation/routemap/pkg/constants"
)

// Layout holds the column positions of a routes row.
type Layout struct {
	AirlineID       int
	SourceName      int
	SourceID        int
	DestinationName int
	DestinationID   int
	Codeshare       int
	Equipment       int
}

// DefaultLayout returns the positions used by the cleaned routes file.
func DefaultLayout() Layout {
	return Layout{
		AirlineID:       constants.RouteAirlineIDIndex,
		SourceName:      constants.RouteSourceNameIndex,
		SourceID:        constants.RouteSourceIDIndex,
		DestinationName: constants.RouteDestinationNameIndex,
		DestinationID:   constants.RouteDestinationIDIndex,
		Codeshare:       constants.RouteCodeshareIndex,
		Equipment:       constants.RouteEquipmentIndex,
	}
}

// validatedWidth is the number of fields a row needs for every foreign key check.
func (l Layout) validatedWidth() int {
	return max(l.AirlineID, l.SourceID, l.DestinationID, l.Equipment) + 1
}

// repairWidth is the number of fields a row needs for airport ID repair.
func (l Layout) repairWidth() int {
	return max(l.SourceName, l.SourceID, l.DestinationName, l.DestinationID) + 1
}
