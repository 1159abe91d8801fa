package config

import "time"

// SpeedPreset represents a named playback speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// speedStep is the multiplicative change applied by Faster and Slower.
const speedStep = 1.5

// SpeedPresets lists presets from slowest to fastest.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast}
}

// IsSpeedPreset reports whether p names a known preset.
func IsSpeedPreset(p SpeedPreset) bool {
	switch p {
	case SpeedSlow, SpeedNormal, SpeedFast:
		return true
	}
	return false
}

// StepMSForPreset returns the step interval in milliseconds for a preset.
func StepMSForPreset(preset SpeedPreset) int {
	switch preset {
	case SpeedSlow:
		return 200
	case SpeedFast:
		return 10
	default:
		return 50
	}
}

// ApplySpeedPreset sets the step interval from a preset, clamped to the
// configured range.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) {
	cfg.Playback.Preset = preset
	cfg.Playback.StepMS = clampInt(StepMSForPreset(preset), cfg.Playback.MinStepMS, cfg.Playback.MaxStepMS)
}

// Interval returns the step interval as a duration.
func (p PlaybackConfig) Interval() time.Duration {
	return time.Duration(p.StepMS) * time.Millisecond
}

// Faster returns a shorter step interval, never below MinStepMS.
func (p PlaybackConfig) Faster(current int) int {
	return clampInt(int(float64(current)/speedStep), p.MinStepMS, p.MaxStepMS)
}

// Slower returns a longer step interval, never above MaxStepMS.
func (p PlaybackConfig) Slower(current int) int {
	next := int(float64(current) * speedStep)
	if next == current {
		next++
	}
	return clampInt(next, p.MinStepMS, p.MaxStepMS)
}

// clampInt restricts val to [lo, hi].
func clampInt(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
