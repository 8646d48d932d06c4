package cmd

import (
	"testing"

	"db-compare/core/config"
	"db-compare/feature/comparison"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSelectComparisons(t *testing.T) {
	all := []config.Comparison{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	got, err := selectComparisons(all, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = selectComparisons(all, []string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []config.Comparison{{Name: "a"}, {Name: "c"}}, got)

	_, err = selectComparisons(all, []string{"x"})
	assert.ErrorIs(t, err, comparison.ErrNotFound)
}

func TestNewService(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.Dir = t.TempDir()
	cfg.Compare.Workers = 3

	svc, err := newService(cfg, []config.Comparison{{Name: "a"}}, zap.NewNop(), serviceOptions{})
	require.NoError(t, err)
	assert.Len(t, svc.Comparisons(), 1)

	cfg.Storage.Endpoint = "localhost:9000"
	_, err = newService(cfg, nil, zap.NewNop(), serviceOptions{upload: true, workers: 2})
	assert.NoError(t, err)
}
