package routes

import (
	"strings"

	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/table"
)

// Validator drops routes whose foreign keys do not resolve.
type Validator struct {
	Airlines  KeySet
	Airports  KeySet
	Equipment KeySet
	Layout    Layout
}

// NewValidator creates a validator using the default layout.
func NewValidator(airlines, airports, equipment KeySet) *Validator {
	return &Validator{
		Airlines:  airlines,
		Airports:  airports,
		Equipment: equipment,
		Layout:    DefaultLayout(),
	}
}

// NewValidatorFromTables builds the key sets from the cleaned reference
// tables: airline and airport IDs from their first column and equipment
// codes from the airplanes IATA column.
func NewValidatorFromTables(airlines, airports, airplanes *table.Table) *Validator {
	return NewValidator(
		BuildKeySet(airlines, constants.ReferenceIDIndex),
		BuildKeySet(airports, constants.ReferenceIDIndex),
		BuildKeySet(airplanes, constants.AirplaneIATAIndex),
	)
}

// Validate keeps the rows whose airline, source airport, destination airport
// and every equipment code resolve. The header and row order are preserved.
// A \N airline ID is always dropped, whatever the reference tables hold.
func (v *Validator) Validate(routes *table.Table) (*table.Table, Result) {
	out := routes.Empty()
	result := newResult(routes.Len())
	width := v.Layout.validatedWidth()

	for i, row := range routes.Rows {
		if len(row) < width {
			result.malformed(i+1, len(row), width)
			continue
		}
		if reason, ok := v.check(row); !ok {
			result.drop(reason)
			continue
		}
		out.Append(append([]string(nil), row...))
	}

	result.Kept = out.Len()
	return out, result
}

func (v *Validator) check(row []string) (Reason, bool) {
	l := v.Layout
	switch {
	case row[l.AirlineID] == constants.UnknownIDSentinel:
		return ReasonAirlineSentinel, false
	case !v.Airlines.Has(row[l.AirlineID]):
		return ReasonUnknownAirline, false
	case !v.Airports.Has(row[l.SourceID]):
		return ReasonUnknownSourceAirport, false
	case !v.Airports.Has(row[l.DestinationID]):
		return ReasonUnknownDestinationAirport, false
	}

	for _, code := range strings.Split(row[l.Equipment], constants.EquipmentSeparator) {
		if code != "" && !v.Equipment.Has(code) {
			return ReasonUnknownEquipment, false
		}
	}
	return "", true
}
