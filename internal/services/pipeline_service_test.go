package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	calls int
	err   error
}

func (f *fakeExtractor) Run(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeGenerator struct {
	calls int
	err   error
}

func (f *fakeGenerator) GenerateAll(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestPipelineRunSuccess(t *testing.T) {
	cfg := testConfig(t)
	extractor := &fakeExtractor{}
	generator := &fakeGenerator{}
	svc := NewPipelineServiceWith(cfg, testLogger(), extractor, generator)

	result, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "rankings generated", result.Message)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, 1, generator.calls)

	// Responses carry the duration in readable form, not nanoseconds.
	_, err = time.ParseDuration(result.Duration)
	assert.NoError(t, err)
}

func TestPipelineRunExtractionFailure(t *testing.T) {
	cfg := testConfig(t)
	extractor := &fakeExtractor{err: errors.New("login: bad credentials")}
	generator := &fakeGenerator{}
	svc := NewPipelineServiceWith(cfg, testLogger(), extractor, generator)

	result, err := svc.Run(context.Background())
	require.Error(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "bad credentials")
	// Aggregation never runs on stale exports after a failed extraction.
	assert.Equal(t, 0, generator.calls)
}

func TestPipelineRunAggregationFailure(t *testing.T) {
	cfg := testConfig(t)
	extractor := &fakeExtractor{}
	generator := &fakeGenerator{err: errors.New("daily ranking: corrupt export")}
	svc := NewPipelineServiceWith(cfg, testLogger(), extractor, generator)

	result, err := svc.Run(context.Background())
	require.Error(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, extractor.calls)
	assert.Contains(t, result.Error, "corrupt export")
}
