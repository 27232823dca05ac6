// Package constants provides shared constants used throughout the routemap codebase.
// This includes default paths, dataset file names, column names and indices,
// matching defaults and file permissions that should be consistent across the application.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Path constants
const (
	// DefaultSourceDir holds the raw input datasets
	DefaultSourceDir = "source_data"

	// DefaultCleanDir receives the cleaned and aligned datasets
	DefaultCleanDir = "clean_data"

	// DefaultMappingsDir receives canonical sets, mapping tables and provenance reports
	DefaultMappingsDir = "clean_data_mappings"

	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".routemap"
)

// Dataset file names
const (
	AirportsFile  = "airports.csv"
	AirlinesFile  = "airlines.csv"
	RoutesFile    = "routes.csv"
	AirplanesFile = "airplanes.csv"
	GDPFile       = "country_gdp.csv"

	UniqueCountriesFile = "unique_countries.csv"
	UniqueCitiesFile    = "unique_cities.csv"

	AlignedGDPFile         = "aligned_gdp.csv"
	AlignedGDPAirlinesFile = "aligned_gdp_airlines.csv"

	RoutesNoInvalidAirlinesFile = "routes_no_invalid_airlines.csv"
	RoutesCleanedFile           = "routes_cleaned.csv"
	RoutesCodeshareFile         = "routes_transformed_codeshare.csv"
	RoutesValidatedFile         = "routes_fully_validated.csv"
)

// Column names
const (
	CountryColumn    = "Country"
	CityColumn       = "City"
	GDPCountryColumn = "Country Name"
	IATAColumn       = "IATA"
	ICAOColumn       = "ICAO"
	IndexColumn      = "index"

	UniqueCountriesHeader   = "Unique_Countries"
	UniqueCitiesHeader      = "Unique_Cities"
	MappedCountryHeader     = "Mapped_Unique_Country"
	UnmappedCountriesHeader = "Unmapped_Unique_Countries"

	// OriginalCountryHeaderPrefix is joined with the source label, e.g. Original_Country_in_GDP
	OriginalCountryHeaderPrefix = "Original_Country_in_"
)

// Routes column layout
const (
	RouteAirlineIDIndex       = 2
	RouteSourceNameIndex      = 3
	RouteSourceIDIndex        = 4
	RouteDestinationNameIndex = 5
	RouteDestinationIDIndex   = 6
	RouteCodeshareIndex       = 7
	RouteEquipmentIndex       = 9
)

// Reference table layout
const (
	// ReferenceIDIndex is the ID column of airlines.csv and airports.csv
	ReferenceIDIndex = 0

	// AirportNameIndex is the Name column of airports.csv
	AirportNameIndex = 1

	// AirplaneIATAIndex is the IATA column of airplanes.csv
	AirplaneIATAIndex = 1
)

// Matching defaults
const (
	// DefaultMatchThreshold is the minimum similarity (0-100) for a name to be mapped
	DefaultMatchThreshold = 90.0

	// MaxScore is the score of two identical names
	MaxScore = 100.0

	// UnknownIDSentinel marks a missing numeric ID in the routes data
	UnknownIDSentinel = `\N`

	// EquipmentSeparator separates aircraft codes in the equipment field
	EquipmentSeparator = " "

	// CodeshareYes and CodeshareNo are the normalized codeshare flag values
	CodeshareYes = "1"
	CodeshareNo  = "0"
)

// GDPSourceLabel names the GDP dataset in mapping headers and file names
const GDPSourceLabel = "GDP"
