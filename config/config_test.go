package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	opts, err := Load([]byte(`metrics_enabled: true`))
	require.NoError(t, err)
	require.Equal(t, "info", opts.LogLevel)
	require.True(t, opts.MetricsEnabled)
	require.False(t, opts.TracingEnabled)
}

func TestLoadCoercesStringMaxMemoGroups(t *testing.T) {
	opts, err := Load([]byte(`max_memo_groups: "5000"`))
	require.NoError(t, err)
	require.Equal(t, 5000, opts.MaxMemoGroups)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte(`not: [valid`))
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/optcore.yaml")
	require.Error(t, err)
}
