// Package theme holds the per-error-code visual configuration.
//
// A Theme is resolved once per game session. Every field has a default so the
// game stays playable when overrides are missing or malformed.
package theme

import (
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/davrk/errblast/internal/config"
)

// Theme is the resolved visual configuration for one error code.
type Theme struct {
	Code    string // Error code rendered as destructible text ("404")
	Message string // Short human-readable description

	// Radial background gradient stops, inner to outer.
	BgInner colorful.Color
	BgMid   colorful.Color
	BgOuter colorful.Color

	// Drifting secondary gradient blended over the background.
	NebulaA colorful.Color
	NebulaB colorful.Color

	// Accent is used for the watermark, player hull and bullets.
	Accent colorful.Color

	// Piece hues are sampled uniformly from [HueMin, HueMax] degrees.
	// HueMin > HueMax means the range wraps through 0.
	HueMin float64
	HueMax float64
}

// mustHex parses a hex color literal. Only used for compile-time defaults.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("theme: bad default color " + s)
	}
	return c
}

var defaults = map[string]Theme{
	"404": {
		Code:    "404",
		Message: "PAGE NOT FOUND",
		BgInner: mustHex("#1b1145"),
		BgMid:   mustHex("#0b1030"),
		BgOuter: mustHex("#05060f"),
		NebulaA: mustHex("#2a1a5e"),
		NebulaB: mustHex("#0e3a5c"),
		Accent:  mustHex("#7c6cff"),
		HueMin:  230,
		HueMax:  290,
	},
	"403": {
		Code:    "403",
		Message: "ACCESS DENIED",
		BgInner: mustHex("#3b1414"),
		BgMid:   mustHex("#2a0b0b"),
		BgOuter: mustHex("#0f0505"),
		NebulaA: mustHex("#5e1a1a"),
		NebulaB: mustHex("#5c3a0e"),
		Accent:  mustHex("#ff6c6c"),
		HueMin:  340,
		HueMax:  20,
	},
	"500": {
		Code:    "500",
		Message: "INTERNAL SERVER ERROR",
		BgInner: mustHex("#123c34"),
		BgMid:   mustHex("#0b2a1a"),
		BgOuter: mustHex("#050f0a"),
		NebulaA: mustHex("#1a5e3a"),
		NebulaB: mustHex("#0e5c5c"),
		Accent:  mustHex("#6cffc9"),
		HueMin:  140,
		HueMax:  200,
	},
}

// Codes returns the error codes with a built-in theme.
func Codes() []string {
	return []string{"403", "404", "500"}
}

// ForCode returns the theme for the given error code.
// Unknown codes get the 404 theme with the code and a generic message swapped in.
func ForCode(code string) Theme {
	if t, ok := defaults[code]; ok {
		return t
	}
	t := defaults["404"]
	t.Code = code
	t.Message = "SOMETHING WENT WRONG"
	return t
}

// FromEnv returns the theme for code with any ERRBLAST_* environment
// overrides applied. Malformed values keep the default.
//
//	ERRBLAST_BG_INNER / _BG_MID / _BG_OUTER   hex colors
//	ERRBLAST_NEBULA_A / _NEBULA_B             hex colors
//	ERRBLAST_ACCENT                           hex color
//	ERRBLAST_HUE_MIN / _HUE_MAX               degrees
func FromEnv(code string) Theme {
	t := ForCode(code)
	t.BgInner = envHex("ERRBLAST_BG_INNER", t.BgInner)
	t.BgMid = envHex("ERRBLAST_BG_MID", t.BgMid)
	t.BgOuter = envHex("ERRBLAST_BG_OUTER", t.BgOuter)
	t.NebulaA = envHex("ERRBLAST_NEBULA_A", t.NebulaA)
	t.NebulaB = envHex("ERRBLAST_NEBULA_B", t.NebulaB)
	t.Accent = envHex("ERRBLAST_ACCENT", t.Accent)
	t.HueMin = envDegrees("ERRBLAST_HUE_MIN", t.HueMin)
	t.HueMax = envDegrees("ERRBLAST_HUE_MAX", t.HueMax)
	return t
}

// envHex parses a hex color from the environment, keeping fallback on any error.
func envHex(key string, fallback colorful.Color) colorful.Color {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return fallback
	}
	return c
}

// envDegrees reads a hue in degrees, normalized to [0, 360). Malformed
// values keep the fallback.
func envDegrees(key string, fallback float64) float64 {
	deg := config.GetEnvFloat(key, fallback)
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
