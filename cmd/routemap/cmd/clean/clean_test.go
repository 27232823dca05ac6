package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/routemap"
	appcontext "github.com/agentstation/routemap/cmd/routemap/context"
)

func TestNewCommandRejectsBadDirection(t *testing.T) {
	called := false
	appCtx := &appcontext.MockContext{
		PipelineFunc: func(opts ...routemap.Option) (routemap.Pipeline, error) {
			called = true
			return routemap.New(opts...)
		},
	}

	cmd := NewCommand(appCtx)
	cmd.SetArgs([]string{"--direction", "sideways"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	require.Error(t, cmd.Execute())
	assert.False(t, called)
}
