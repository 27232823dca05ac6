package routemap

import (
	"sort"
	"time"
)

// Stage names a pipeline step
type Stage string

// Pipeline stages, in execution order
const (
	StageExtract               Stage = "extract"
	StageReconcile             Stage = "reconcile"
	StageClean                 Stage = "clean"
	StageAlignAirports         Stage = "align-airports"
	StageAlignAirlines         Stage = "align-airlines"
	StageDedupe                Stage = "dedupe"
	StageRemoveUnknownAirlines Stage = "remove-unknown-airlines"
	StageRepairAirports        Stage = "repair-airports"
	StageNormalizeCodeshare    Stage = "normalize-codeshare"
	StageValidate              Stage = "validate"
)

// Stages returns every stage in execution order
func Stages() []Stage {
	return []Stage{
		StageExtract,
		StageReconcile,
		StageClean,
		StageAlignAirports,
		StageAlignAirlines,
		StageDedupe,
		StageRemoveUnknownAirlines,
		StageRepairAirports,
		StageNormalizeCodeshare,
		StageValidate,
	}
}

// ParseStage returns the stage with the given name
func ParseStage(name string) (Stage, bool) {
	for _, s := range Stages() {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// StageResult summarizes one stage
type StageResult struct {
	Stage     Stage          `json:"stage" yaml:"stage"`
	Outputs   []string       `json:"outputs" yaml:"outputs"`
	Read      int            `json:"read" yaml:"read"`           // data rows or names read
	Written   int            `json:"written" yaml:"written"`     // data rows written to the primary output
	Changed   int            `json:"changed" yaml:"changed"`     // fields rewritten, names mapped or rows padded
	Dropped   int            `json:"dropped" yaml:"dropped"`     // rows removed for a failed check
	Malformed int            `json:"malformed" yaml:"malformed"` // rows removed for being too short
	Details   map[string]int `json:"details,omitempty" yaml:"details,omitempty"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
}

// DetailKeys returns the detail names in sorted order
func (r StageResult) DetailKeys() []string {
	keys := make([]string, 0, len(r.Details))
	for k := range r.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RunResult summarizes a full pipeline run
type RunResult struct {
	Stages   []StageResult `json:"stages" yaml:"stages"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Outputs returns every file written during the run
func (r *RunResult) Outputs() []string {
	var out []string
	for _, s := range r.Stages {
		out = append(out, s.Outputs...)
	}
	return out
}
