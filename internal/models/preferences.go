package models

import "math"

type ThemeMode string

const (
	ThemeLight        ThemeMode = "light"
	ThemeDark         ThemeMode = "dark"
	ThemeHighContrast ThemeMode = "highContrast"
)

func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeHighContrast:
		return true
	}
	return false
}

const (
	MinFontScale     = 0.8
	MaxFontScale     = 1.5
	DefaultFontScale = 1.0
	FontScaleStep    = 0.1
)

type ThemePreferences struct {
	Mode         ThemeMode `json:"mode"`
	HighContrast bool      `json:"highContrast"`
	FontScale    float64   `json:"fontScale"`
}

func DefaultThemePreferences() ThemePreferences {
	return ThemePreferences{
		Mode:      ThemeLight,
		FontScale: DefaultFontScale,
	}
}

// StepFontScale сдвигает масштаб на steps шагов, округляя до сотых
func StepFontScale(scale float64, steps int) float64 {
	next := scale + float64(steps)*FontScaleStep
	return ClampFontScale(math.Round(next*100) / 100)
}

// ClampFontScale ограничивает масштаб шрифта диапазоном [MinFontScale, MaxFontScale]
func ClampFontScale(scale float64) float64 {
	if scale < MinFontScale {
		return MinFontScale
	}
	if scale > MaxFontScale {
		return MaxFontScale
	}
	return scale
}
