package context

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/routemap"
)

// MockContext provides a mock implementation of Context for testing.
// If a function field is nil, the method returns a default/zero value.
type MockContext struct {
	PipelineFunc     func(opts ...routemap.Option) (routemap.Pipeline, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Pipeline calls PipelineFunc, or builds a default pipeline with the options.
func (m *MockContext) Pipeline(opts ...routemap.Option) (routemap.Pipeline, error) {
	if m.PipelineFunc != nil {
		return m.PipelineFunc(opts...)
	}
	return routemap.New(opts...)
}

// Logger calls LoggerFunc, or returns a no-op logger.
func (m *MockContext) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat calls OutputFormatFunc, or returns "json".
func (m *MockContext) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version calls VersionFunc, or returns "test".
func (m *MockContext) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns "unknown".
func (m *MockContext) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *MockContext) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *MockContext) BuiltBy() string { return "test" }

var _ Context = (*MockContext)(nil)
