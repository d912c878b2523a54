// Package config centralizes the core's tunable thresholds: discovery
// cadence and backoff, watchdog silence windows, ARPA acquisition/gating
// parameters, guard-zone debounce, trail decay, and brand-specific
// cadences (Navico keep-alives, Furuno's model-query grace period). These
// are the Open Questions spec.md §8 leaves "informally defaulted... make
// them explicit configuration with documented defaults."
//
// The schema matches the original TuningConfig's optional-*T-field /
// Get* accessor idiom, so partial JSON overrides are safe. Defaults are
// embedded at build time rather than path-searched from a working
// directory, since this package is a library dependency rather than a
// standalone service.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed tuning.defaults.json
var defaultsJSON []byte

// TuningConfig is the root tuning schema. Every field is optional; omitted
// fields fall back to the embedded defaults via the Get* accessors.
type TuningConfig struct {
	DiscoveryProbeIntervalMs *int64 `json:"discovery_probe_interval_ms,omitempty"`
	DiscoveryLostTimeoutMs   *int64 `json:"discovery_lost_timeout_ms,omitempty"`

	BackoffInitialMs *int64 `json:"backoff_initial_ms,omitempty"`
	BackoffMaxMs     *int64 `json:"backoff_max_ms,omitempty"`
	WatchdogSilenceMs *int64 `json:"watchdog_silence_ms,omitempty"`

	NavicoHaloKeepAliveMs   *int64 `json:"navico_halo_keepalive_ms,omitempty"`
	NavicoLegacyKeepAliveMs *int64 `json:"navico_legacy_keepalive_ms,omitempty"`
	NavicoDownsampleK       *int   `json:"navico_downsample_k,omitempty"`

	FurunoModelQueryGraceMs *int64 `json:"furuno_model_query_grace_ms,omitempty"`

	ArpaAcquireRevolutions  *int     `json:"arpa_acquire_revolutions,omitempty"`
	ArpaRevolutionPeriodMs  *int64   `json:"arpa_revolution_period_ms,omitempty"`
	ArpaTargetLostTimeoutMs *int64   `json:"arpa_target_lost_timeout_ms,omitempty"`
	ArpaMinIntensity        *int     `json:"arpa_min_intensity,omitempty"`
	ArpaMinPixels           *int     `json:"arpa_min_pixels,omitempty"`
	ArpaGateDistanceMeters  *float64 `json:"arpa_gate_distance_meters,omitempty"`
	ArpaProcessNoisePos     *float64 `json:"arpa_process_noise_pos,omitempty"`
	ArpaProcessNoiseVel     *float64 `json:"arpa_process_noise_vel,omitempty"`
	ArpaMeasurementNoise    *float64 `json:"arpa_measurement_noise,omitempty"`

	GuardZoneDebounceMs *int64 `json:"guard_zone_debounce_ms,omitempty"`

	TrailHalfLifeMs *float64 `json:"trail_half_life_ms,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with every field nil; Get*
// accessors then fall back to the documented defaults.
func EmptyTuningConfig() *TuningConfig { return &TuningConfig{} }

// MustLoadDefaultConfig loads the embedded canonical defaults. Panics if
// the embedded JSON is malformed, which would indicate a build-time bug
// rather than a runtime condition.
func MustLoadDefaultConfig() *TuningConfig {
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(defaultsJSON, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded tuning.defaults.json is invalid: %v", err))
	}
	return cfg
}

// LoadTuningConfig parses a host-supplied JSON override document. Fields omitted
// retain their documented defaults through the Get* accessors.
func LoadTuningConfig(data []byte) (*TuningConfig, error) {
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("tuning: parse config: %w", err)
	}
	return cfg, nil
}

func (c *TuningConfig) GetDiscoveryProbeIntervalMs() int64 {
	if c.DiscoveryProbeIntervalMs == nil {
		return 1000
	}
	return *c.DiscoveryProbeIntervalMs
}

func (c *TuningConfig) GetDiscoveryLostTimeoutMs() int64 {
	if c.DiscoveryLostTimeoutMs == nil {
		return 30000
	}
	return *c.DiscoveryLostTimeoutMs
}

func (c *TuningConfig) GetBackoffInitialMs() int64 {
	if c.BackoffInitialMs == nil {
		return 1000
	}
	return *c.BackoffInitialMs
}

func (c *TuningConfig) GetBackoffMaxMs() int64 {
	if c.BackoffMaxMs == nil {
		return 30000
	}
	return *c.BackoffMaxMs
}

func (c *TuningConfig) GetWatchdogSilenceMs() int64 {
	if c.WatchdogSilenceMs == nil {
		return 15000
	}
	return *c.WatchdogSilenceMs
}

func (c *TuningConfig) GetNavicoHaloKeepAliveMs() int64 {
	if c.NavicoHaloKeepAliveMs == nil {
		return 75
	}
	return *c.NavicoHaloKeepAliveMs
}

func (c *TuningConfig) GetNavicoLegacyKeepAliveMs() int64 {
	if c.NavicoLegacyKeepAliveMs == nil {
		return 3000
	}
	return *c.NavicoLegacyKeepAliveMs
}

func (c *TuningConfig) GetNavicoDownsampleK() int {
	if c.NavicoDownsampleK == nil {
		return 1
	}
	return *c.NavicoDownsampleK
}

func (c *TuningConfig) GetFurunoModelQueryGraceMs() int64 {
	if c.FurunoModelQueryGraceMs == nil {
		return 2000
	}
	return *c.FurunoModelQueryGraceMs
}

func (c *TuningConfig) GetArpaAcquireRevolutions() int {
	if c.ArpaAcquireRevolutions == nil {
		return 3
	}
	return *c.ArpaAcquireRevolutions
}

func (c *TuningConfig) GetArpaRevolutionPeriodMs() int64 {
	if c.ArpaRevolutionPeriodMs == nil {
		return 2500
	}
	return *c.ArpaRevolutionPeriodMs
}

func (c *TuningConfig) GetArpaTargetLostTimeoutMs() int64 {
	if c.ArpaTargetLostTimeoutMs == nil {
		return 15000
	}
	return *c.ArpaTargetLostTimeoutMs
}

func (c *TuningConfig) GetArpaMinIntensity() int {
	if c.ArpaMinIntensity == nil {
		return 180
	}
	return *c.ArpaMinIntensity
}

func (c *TuningConfig) GetArpaMinPixels() int {
	if c.ArpaMinPixels == nil {
		return 3
	}
	return *c.ArpaMinPixels
}

func (c *TuningConfig) GetArpaGateDistanceMeters() float64 {
	if c.ArpaGateDistanceMeters == nil {
		return 50
	}
	return *c.ArpaGateDistanceMeters
}

func (c *TuningConfig) GetArpaProcessNoisePos() float64 {
	if c.ArpaProcessNoisePos == nil {
		return 0.5
	}
	return *c.ArpaProcessNoisePos
}

func (c *TuningConfig) GetArpaProcessNoiseVel() float64 {
	if c.ArpaProcessNoiseVel == nil {
		return 1.0
	}
	return *c.ArpaProcessNoiseVel
}

func (c *TuningConfig) GetArpaMeasurementNoise() float64 {
	if c.ArpaMeasurementNoise == nil {
		return 25
	}
	return *c.ArpaMeasurementNoise
}

func (c *TuningConfig) GetGuardZoneDebounceMs() int64 {
	if c.GuardZoneDebounceMs == nil {
		return 2000
	}
	return *c.GuardZoneDebounceMs
}

func (c *TuningConfig) GetTrailHalfLifeMs() float64 {
	if c.TrailHalfLifeMs == nil {
		return 30000
	}
	return *c.TrailHalfLifeMs
}
