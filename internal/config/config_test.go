package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 500, cfg.Analysis.Heuristics.SampleSize)
	assert.Equal(t, 0.9, cfg.Analysis.Heuristics.IdentifierUniqueRatio)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ANALYSIS_SAMPLE_SIZE", "200")
	t.Setenv("ANALYSIS_NUMERIC_RATIO", "0.75")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 200, cfg.Analysis.Heuristics.SampleSize)
	assert.Equal(t, 0.75, cfg.Analysis.Heuristics.NumericRatio)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("ANALYSIS_SAMPLE_SIZE", "lots")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Analysis.Heuristics.SampleSize)
}
