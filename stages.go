package routemap

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/routemap/pkg/align"
	"github.com/agentstation/routemap/pkg/constants"
	"github.com/agentstation/routemap/pkg/dedupe"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
	"github.com/agentstation/routemap/pkg/provenance"
	"github.com/agentstation/routemap/pkg/reconcile"
	"github.com/agentstation/routemap/pkg/routes"
	"github.com/agentstation/routemap/pkg/table"
)

type stageFunc func(ctx context.Context) (*StageResult, error)

func (p *pipeline) stageFuncs() map[Stage]stageFunc {
	return map[Stage]stageFunc{
		StageExtract:               p.extract,
		StageReconcile:             p.reconcile,
		StageClean:                 p.cleanCountries,
		StageAlignAirports:         p.alignAirports,
		StageAlignAirlines:         p.alignAirlines,
		StageDedupe:                p.dedupeAirplanes,
		StageRemoveUnknownAirlines: p.removeUnknownAirlines,
		StageRepairAirports:        p.repairAirports,
		StageNormalizeCodeshare:    p.normalizeCodeshare,
		StageValidate:              p.validate,
	}
}

// extract writes the canonical country set and the distinct cities of the
// airports dataset.
func (p *pipeline) extract(ctx context.Context) (*StageResult, error) {
	airports, err := p.load(ctx, p.source(constants.AirportsFile))
	if err != nil {
		return nil, err
	}

	countries, err := reconcile.BuildCanonicalSet(airports, constants.CountryColumn)
	if err != nil {
		return nil, err
	}
	cities, err := reconcile.ExtractUnique(airports, constants.CityColumn)
	if err != nil {
		return nil, err
	}

	countriesPath := p.mapping(constants.UniqueCountriesFile)
	if err := reconcile.WriteCanonicalFile(countriesPath, constants.UniqueCountriesHeader, countries); err != nil {
		return nil, err
	}
	citiesPath := p.mapping(constants.UniqueCitiesFile)
	if err := reconcile.WriteCanonicalFile(citiesPath, constants.UniqueCitiesHeader, cities); err != nil {
		return nil, err
	}

	return &StageResult{
		Outputs: []string{countriesPath, citiesPath},
		Read:    airports.Len(),
		Written: countries.Len(),
		Details: map[string]int{"countries": countries.Len(), "cities": len(cities)},
	}, nil
}

// reconcile maps the GDP country spellings onto the canonical set.
func (p *pipeline) reconcile(ctx context.Context) (*StageResult, error) {
	ctx = logging.WithFields(ctx, map[string]any{
		"source":    constants.GDPSourceLabel,
		"threshold": p.config.threshold,
	})
	logger := logging.FromContext(ctx)

	canonical, err := reconcile.ReadCanonicalFile(p.mapping(constants.UniqueCountriesFile), constants.UniqueCountriesHeader)
	if err != nil {
		return nil, err
	}
	gdp, err := p.load(ctx, p.source(constants.GDPFile))
	if err != nil {
		return nil, err
	}
	gdp.Name = constants.GDPSourceLabel

	tracker := provenance.NewTracker(p.config.provenance)
	r, err := reconcile.New(
		reconcile.WithThreshold(p.config.threshold),
		reconcile.WithScorer(p.config.scorer),
		reconcile.WithProvenance(tracker),
		reconcile.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	result, err := r.Reconcile(ctx, gdp, constants.GDPCountryColumn, canonical)
	if err != nil {
		return nil, err
	}
	for _, nc := range result.NoCandidates {
		logger.Debug().Err(nc).Msg("Unmapped name")
	}

	label := constants.GDPSourceLabel
	mappingPath := p.mapping(reconcile.MappingFileName(label))
	if err := reconcile.WriteMappingFile(mappingPath, label, result.Mappings); err != nil {
		return nil, err
	}
	unmappedPath := p.mapping(reconcile.UnmappedFileName(label))
	if err := reconcile.WriteUnmappedFile(unmappedPath, result.UnmappedCanonical); err != nil {
		return nil, err
	}
	outputs := []string{mappingPath, unmappedPath}

	// A provenance file from an earlier run no longer describes these mappings.
	provenancePath := p.mapping(reconcile.ProvenanceFileName(label))
	if p.config.provenance {
		if err := provenance.Save(provenancePath, tracker.Map()); err != nil {
			return nil, err
		}
		outputs = append(outputs, provenancePath)
	} else if err := removeStale(provenancePath); err != nil {
		return nil, err
	}

	return &StageResult{
		Outputs: outputs,
		Read:    result.Stats.Names,
		Written: result.Stats.Mapped,
		Changed: result.Stats.Mapped,
		Details: map[string]int{
			"canonical":          result.Stats.Canonical,
			"no_candidate":       result.Stats.Unmatched,
			"unmapped_canonical": result.Stats.Unmapped,
		},
	}, nil
}

// cleanCountries rewrites the country columns so GDP, airports and airlines
// share one spelling, and drops the leftover index column from airlines.
func (p *pipeline) cleanCountries(ctx context.Context) (*StageResult, error) {
	logger := logging.FromContext(ctx)

	mappings, _, err := reconcile.ReadMappingFile(p.mapping(reconcile.MappingFileName(constants.GDPSourceLabel)))
	if err != nil {
		return nil, err
	}
	gdp, err := p.load(ctx, p.source(constants.GDPFile))
	if err != nil {
		return nil, err
	}
	airports, err := p.load(ctx, p.source(constants.AirportsFile))
	if err != nil {
		return nil, err
	}
	airlines, err := p.load(ctx, p.source(constants.AirlinesFile))
	if err != nil {
		return nil, err
	}

	var gdpStats, airportStats, airlineStats align.Stats
	switch p.config.direction {
	case DirectionToCanonical:
		if gdp, gdpStats, err = align.ApplyMapping(gdp, constants.GDPCountryColumn, mappings); err != nil {
			return nil, err
		}
	default:
		inverse := mappings.Invert()
		if airports, airportStats, err = align.ApplyMapping(airports, constants.CountryColumn, inverse); err != nil {
			return nil, err
		}
		if airlines, airlineStats, err = align.ApplyMapping(airlines, constants.CountryColumn, inverse); err != nil {
			return nil, err
		}
	}

	airlines, dropped := align.DropColumn(airlines, constants.IndexColumn)
	if dropped {
		logger.Debug().Str("column", constants.IndexColumn).Msg("Dropped column from airlines")
	}

	outputs := []string{
		p.clean(constants.GDPFile),
		p.clean(constants.AirportsFile),
		p.clean(constants.AirlinesFile),
	}
	for i, t := range []*table.Table{gdp, airports, airlines} {
		if err := p.write(ctx, t, outputs[i]); err != nil {
			return nil, err
		}
	}

	details := map[string]int{
		"gdp":      gdpStats.Replaced,
		"airports": airportStats.Replaced,
		"airlines": airlineStats.Replaced,
	}
	if dropped {
		details["dropped_columns"] = 1
	}
	return &StageResult{
		Outputs: outputs,
		Read:    gdp.Len() + airports.Len() + airlines.Len(),
		Written: gdp.Len() + airports.Len() + airlines.Len(),
		Changed: gdpStats.Replaced + airportStats.Replaced + airlineStats.Replaced,
		Details: details,
	}, nil
}

// alignAirports restricts GDP to the airport countries and pads the missing ones.
func (p *pipeline) alignAirports(ctx context.Context) (*StageResult, error) {
	airports, err := p.load(ctx, p.clean(constants.AirportsFile))
	if err != nil {
		return nil, err
	}
	gdp, err := p.load(ctx, p.clean(constants.GDPFile))
	if err != nil {
		return nil, err
	}
	return p.alignCoverage(ctx, airports, gdp, align.ModeFilterAndPad, constants.AlignedGDPFile)
}

// alignAirlines pads the aligned GDP table with the airline countries it lacks.
func (p *pipeline) alignAirlines(ctx context.Context) (*StageResult, error) {
	airlines, err := p.load(ctx, p.clean(constants.AirlinesFile))
	if err != nil {
		return nil, err
	}
	gdp, err := p.load(ctx, p.clean(constants.AlignedGDPFile))
	if err != nil {
		return nil, err
	}
	return p.alignCoverage(ctx, airlines, gdp, align.ModePadOnly, constants.AlignedGDPAirlinesFile)
}

func (p *pipeline) alignCoverage(ctx context.Context, primary, gdp *table.Table, mode align.Mode, output string) (*StageResult, error) {
	aligned, stats, err := align.AlignCoverage(primary, gdp, constants.CountryColumn, constants.GDPCountryColumn, mode)
	if err != nil {
		return nil, err
	}
	path := p.clean(output)
	if err := p.write(ctx, aligned, path); err != nil {
		return nil, err
	}
	return &StageResult{
		Outputs: []string{path},
		Read:    gdp.Len(),
		Written: aligned.Len(),
		Changed: stats.Padded,
		Dropped: stats.Filtered,
	}, nil
}

// dedupeAirplanes nulls every duplicated IATA and ICAO code.
func (p *pipeline) dedupeAirplanes(ctx context.Context) (*StageResult, error) {
	airplanes, err := p.load(ctx, p.source(constants.AirplanesFile))
	if err != nil {
		return nil, err
	}
	out, report, err := dedupe.Dedupe(airplanes, constants.IATAColumn, constants.ICAOColumn)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	for column, values := range report.Duplicates {
		logger.Debug().Str("column", column).Strs("values", values).Msg("Duplicated keys nulled")
	}

	path := p.clean(constants.AirplanesFile)
	if err := p.write(ctx, out, path); err != nil {
		return nil, err
	}
	return &StageResult{
		Outputs: []string{path},
		Read:    airplanes.Len(),
		Written: out.Len(),
		Changed: report.Total(),
		Details: report.Nulled,
	}, nil
}

func (p *pipeline) removeUnknownAirlines(ctx context.Context) (*StageResult, error) {
	in, err := p.load(ctx, p.source(constants.RoutesFile))
	if err != nil {
		return nil, err
	}
	out, result := routes.RemoveUnknownAirlines(in, routes.DefaultLayout())
	return p.writeRoutes(ctx, out, result, constants.RoutesNoInvalidAirlinesFile)
}

func (p *pipeline) repairAirports(ctx context.Context) (*StageResult, error) {
	in, err := p.load(ctx, p.clean(constants.RoutesNoInvalidAirlinesFile))
	if err != nil {
		return nil, err
	}
	airports, err := p.load(ctx, p.clean(constants.AirportsFile))
	if err != nil {
		return nil, err
	}
	names := routes.BuildNameIndex(airports, constants.ReferenceIDIndex, constants.AirportNameIndex)
	out, result := routes.RepairAirportIDs(in, names, routes.DefaultLayout())
	return p.writeRoutes(ctx, out, result, constants.RoutesCleanedFile)
}

func (p *pipeline) normalizeCodeshare(ctx context.Context) (*StageResult, error) {
	in, err := p.load(ctx, p.clean(constants.RoutesCleanedFile))
	if err != nil {
		return nil, err
	}
	out, result := routes.NormalizeCodeshare(in, routes.DefaultLayout())
	return p.writeRoutes(ctx, out, result, constants.RoutesCodeshareFile)
}

func (p *pipeline) validate(ctx context.Context) (*StageResult, error) {
	in, err := p.load(ctx, p.clean(constants.RoutesCodeshareFile))
	if err != nil {
		return nil, err
	}
	airlines, err := p.load(ctx, p.clean(constants.AirlinesFile))
	if err != nil {
		return nil, err
	}
	airports, err := p.load(ctx, p.clean(constants.AirportsFile))
	if err != nil {
		return nil, err
	}
	airplanes, err := p.load(ctx, p.clean(constants.AirplanesFile))
	if err != nil {
		return nil, err
	}

	out, result := routes.NewValidatorFromTables(airlines, airports, airplanes).Validate(in)
	return p.writeRoutes(ctx, out, result, constants.RoutesValidatedFile)
}

func (p *pipeline) writeRoutes(ctx context.Context, out *table.Table, result routes.Result, name string) (*StageResult, error) {
	path := p.clean(name)
	if err := p.write(ctx, out, path); err != nil {
		return nil, err
	}

	details := make(map[string]int, len(result.DropReasons))
	for reason, n := range result.DropReasons {
		details[string(reason)] = n
	}
	return &StageResult{
		Outputs:   []string{path},
		Read:      result.Total,
		Written:   result.Kept,
		Changed:   result.Rewritten,
		Dropped:   result.Dropped,
		Malformed: result.Malformed,
		Details:   details,
	}, nil
}

// removeStale deletes a file left by an earlier run. A missing file is fine.
func removeStale(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.WrapIO("remove", path, err)
}

// load reads a dataset and logs it under its dataset name and path.
func (p *pipeline) load(ctx context.Context, path string) (*table.Table, error) {
	ctx = logging.WithPath(logging.WithDataset(ctx, datasetName(path)), path)
	t, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().Int("rows", t.Len()).Int("columns", len(t.Header)).Msg("Loaded dataset")
	return t, nil
}

// write saves a dataset and logs it under its dataset name and path.
func (p *pipeline) write(ctx context.Context, t *table.Table, path string) error {
	ctx = logging.WithPath(logging.WithDataset(ctx, datasetName(path)), path)
	if err := t.Write(path); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Int("rows", t.Len()).Msg("Wrote dataset")
	return nil
}

// datasetName is the file name without directory or extension.
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
