package app

import (
	"log"
	"strconv"

	"github.com/ayusman/kathak/internal/gesture"
	"github.com/ayusman/kathak/internal/store"
)

// Settings keys for the gesture configuration.
const (
	settingMode          = "mode"
	settingCooldownS     = "cooldown_s"
	settingBufferSize    = "buffer_size"
	settingEMAAlpha      = "ema_alpha"
	settingDXThresh      = "dx_thresh"
	settingDYThresh      = "dy_thresh"
	settingVMin          = "vmin"
	settingDeadzone      = "deadzone"
	settingFingerMargin  = "finger_margin"
	settingThumbRatio    = "thumb_ratio"
	settingClearOnDrop   = "clear_on_drop"
	settingResetMode     = "reset_mode"
	settingNeutralRadius = "neutral_radius"
	settingMirrorView    = "mirror_view"
	settingDebug         = "debug"
)

// LoadGestureConfig reads the gesture configuration from settings, starting
// from the defaults so missing keys keep their stock values.
func LoadGestureConfig(settings *store.SettingsRepository) gesture.Config {
	cfg := gesture.DefaultConfig()

	cfg.Mode = gesture.Mode(settings.GetString(settingMode, string(cfg.Mode)))
	cfg.CooldownS = settings.GetFloat(settingCooldownS, cfg.CooldownS)
	cfg.BufferSize = settings.GetInt(settingBufferSize, cfg.BufferSize)
	cfg.EMAAlpha = settings.GetFloat(settingEMAAlpha, cfg.EMAAlpha)
	cfg.DXThresh = settings.GetFloat(settingDXThresh, cfg.DXThresh)
	cfg.DYThresh = settings.GetFloat(settingDYThresh, cfg.DYThresh)
	cfg.VMin = settings.GetFloat(settingVMin, cfg.VMin)
	cfg.Deadzone = settings.GetFloat(settingDeadzone, cfg.Deadzone)
	cfg.FingerMargin = settings.GetFloat(settingFingerMargin, cfg.FingerMargin)
	cfg.ThumbRatio = settings.GetFloat(settingThumbRatio, cfg.ThumbRatio)
	cfg.ClearOnDrop = settings.GetBool(settingClearOnDrop, cfg.ClearOnDrop)
	cfg.ResetMode = gesture.ResetMode(settings.GetString(settingResetMode, string(cfg.ResetMode)))
	cfg.NeutralRadius = settings.GetFloat(settingNeutralRadius, cfg.NeutralRadius)
	cfg.MirrorView = settings.GetBool(settingMirrorView, cfg.MirrorView)
	cfg.Debug = settings.GetBool(settingDebug, cfg.Debug)

	return cfg
}

// saveGestureSettings persists the gesture configuration as settings rows.
func saveGestureSettings(settings *store.SettingsRepository, cfg gesture.Config) {
	values := map[string]string{
		settingMode:          string(cfg.Mode),
		settingCooldownS:     formatFloat(cfg.CooldownS),
		settingBufferSize:    strconv.Itoa(cfg.BufferSize),
		settingEMAAlpha:      formatFloat(cfg.EMAAlpha),
		settingDXThresh:      formatFloat(cfg.DXThresh),
		settingDYThresh:      formatFloat(cfg.DYThresh),
		settingVMin:          formatFloat(cfg.VMin),
		settingDeadzone:      formatFloat(cfg.Deadzone),
		settingFingerMargin:  formatFloat(cfg.FingerMargin),
		settingThumbRatio:    formatFloat(cfg.ThumbRatio),
		settingClearOnDrop:   strconv.FormatBool(cfg.ClearOnDrop),
		settingResetMode:     string(cfg.ResetMode),
		settingNeutralRadius: formatFloat(cfg.NeutralRadius),
		settingMirrorView:    strconv.FormatBool(cfg.MirrorView),
		settingDebug:         strconv.FormatBool(cfg.Debug),
	}

	for key, value := range values {
		if err := settings.Set(key, value); err != nil {
			log.Printf("Failed to persist setting %s: %v", key, err)
		}
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
