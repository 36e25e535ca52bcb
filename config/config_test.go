package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5260", cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 2020, cfg.PermitCutoffYear)
	assert.Equal(t, 50, cfg.Batch.QueueSize)
	assert.Equal(t, 2, cfg.Batch.WorkerCount)
	assert.Empty(t, cfg.Narrative.APIKey)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("PERMIT_CUTOFF_YEAR", "2015")
	t.Setenv("NARRATIVE_API_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2015, cfg.PermitCutoffYear)
	assert.Equal(t, "secret", cfg.Narrative.APIKey)
}

func TestDefaultRules(t *testing.T) {
	kt := DefaultKeywordTable()
	assert.NotEmpty(t, kt.Supplement)
	assert.NotEmpty(t, kt.Building)
	assert.NotEmpty(t, kt.ADU)

	cs := DefaultCostSchedule()
	assert.Greater(t, cs.NewConstructionPSF, 0.0)
	assert.Greater(t, cs.SoftCostPct, 0.0)
	assert.Greater(t, cs.DefaultHoldMonths, 0.0)
}

func TestLoadRules_MissingFilesKeepDefaults(t *testing.T) {
	require.NoError(t, LoadRules(t.TempDir()))

	assert.Equal(t, DefaultKeywordTable(), GetKeywordTable())
	assert.Equal(t, DefaultCostSchedule(), GetCostSchedule())
}

func TestLoadRules_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := "version: 2\nnew_construction_psf: 550\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cost_schedule.yaml"), []byte(yaml), 0644))

	require.NoError(t, LoadRules(dir))
	t.Cleanup(func() { _ = LoadRules(t.TempDir()) })

	cs := GetCostSchedule()
	assert.Equal(t, 2, cs.Version)
	assert.InDelta(t, 550.0, cs.NewConstructionPSF, 0.001)
	// Fields absent from the override keep their defaults.
	assert.InDelta(t, DefaultCostSchedule().RemodelPSF, cs.RemodelPSF, 0.001)
}

func TestLoadRules_MalformedYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.yaml"), []byte("supplement: [unclosed"), 0644))

	assert.Error(t, LoadRules(dir))
}

func TestSaveRules_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadRules(t.TempDir()))
	require.NoError(t, SaveRules(dir))

	require.NoError(t, LoadRules(dir))
	assert.Equal(t, DefaultKeywordTable(), GetKeywordTable())
	assert.Equal(t, DefaultCostSchedule(), GetCostSchedule())
}
