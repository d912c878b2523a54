package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoadDefaultConfig_PopulatesDocumentedValues(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	assert.Equal(t, int64(75), cfg.GetNavicoHaloKeepAliveMs())
	assert.Equal(t, int64(3000), cfg.GetNavicoLegacyKeepAliveMs())
	assert.Equal(t, int64(2000), cfg.GetFurunoModelQueryGraceMs())
	assert.Equal(t, 3, cfg.GetArpaAcquireRevolutions())
}

func TestEmptyTuningConfig_AccessorsFallBackToDocumentedDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()
	assert.Equal(t, int64(1000), cfg.GetDiscoveryProbeIntervalMs())
	assert.Equal(t, int64(30000), cfg.GetDiscoveryLostTimeoutMs())
	assert.Equal(t, int64(1000), cfg.GetBackoffInitialMs())
	assert.Equal(t, int64(30000), cfg.GetBackoffMaxMs())
	assert.Equal(t, int64(15000), cfg.GetWatchdogSilenceMs())
	assert.Equal(t, 1, cfg.GetNavicoDownsampleK())
	assert.Equal(t, 180, cfg.GetArpaMinIntensity())
	assert.Equal(t, int64(2000), cfg.GetGuardZoneDebounceMs())
	assert.Equal(t, 30000.0, cfg.GetTrailHalfLifeMs())
}

func TestLoadTuningConfig_PartialOverrideLeavesRestAtDefault(t *testing.T) {
	cfg, err := LoadTuningConfig([]byte(`{"navico_downsample_k": 4}`))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.GetNavicoDownsampleK())
	assert.Equal(t, int64(1000), cfg.GetDiscoveryProbeIntervalMs())
}

func TestLoadTuningConfig_InvalidJSONErrors(t *testing.T) {
	_, err := LoadTuningConfig([]byte(`not json`))
	assert.Error(t, err)
}
