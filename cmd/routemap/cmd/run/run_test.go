package run

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap"
	appcontext "github.com/agentstation/routemap/cmd/routemap/context"
	"github.com/agentstation/routemap/pkg/errors"
	"github.com/agentstation/routemap/pkg/logging"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		only     []string
		expected []routemap.Stage
	}{
		{name: "everything", expected: routemap.Stages()},
		{name: "single stage", from: "clean", to: "clean", expected: []routemap.Stage{routemap.StageClean}},
		{
			name:     "up to reconcile",
			to:       "reconcile",
			expected: []routemap.Stage{routemap.StageExtract, routemap.StageReconcile},
		},
		{
			name:     "pattern",
			only:     []string{"align-*", "dedupe"},
			expected: []routemap.Stage{routemap.StageAlignAirports, routemap.StageAlignAirlines, routemap.StageDedupe},
		},
		{
			name:     "pattern within bounds",
			to:       "align-airports",
			only:     []string{"*-airports"},
			expected: []routemap.Stage{routemap.StageAlignAirports},
		},
		{
			name: "routes only",
			from: "remove-unknown-airlines",
			expected: []routemap.Stage{
				routemap.StageRemoveUnknownAirlines,
				routemap.StageRepairAirports,
				routemap.StageNormalizeCodeshare,
				routemap.StageValidate,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stages, err := Select(tt.from, tt.to, tt.only...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stages)
		})
	}
}

func TestSelectErrors(t *testing.T) {
	_, err := Select("bogus", "")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = Select("validate", "extract")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = Select("", "", "nothing-*")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = Select("", "", "(bad")
	require.Error(t, err)
}

func TestOptions(t *testing.T) {
	cmd := NewCommand(nil)
	require.NoError(t, cmd.ParseFlags([]string{"--threshold", "80"}))

	flags := &Flags{Threshold: 80, Direction: "to-source"}
	opts, err := options(cmd, flags)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	require.NoError(t, cmd.ParseFlags([]string{"--direction", "sideways"}))
	_, err = options(cmd, &Flags{Direction: "sideways"})
	require.Error(t, err)
}

func TestStageFailureLoggedOnce(t *testing.T) {
	tl := logging.NewTestLogger(t)
	appCtx := &appcontext.MockContext{
		LoggerFunc: func() *zerolog.Logger { return tl.Logger },
		PipelineFunc: func(opts ...routemap.Option) (routemap.Pipeline, error) {
			missing := filepath.Join(t.TempDir(), "missing")
			return routemap.New(append(opts,
				routemap.WithSourceDir(missing),
				routemap.WithLogger(tl.Logger),
			)...)
		},
	}

	cmd := NewCommand(appCtx)
	cmd.SetArgs([]string{"--only", "extract"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsMissingFile(err))
	assert.Equal(t, 1, strings.Count(tl.Output(), "Stage failed"))
}
