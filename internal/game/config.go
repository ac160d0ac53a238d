package game

import "time"

// Frame scheduling.
const (
	targetFPS       = 30
	targetFrameTime = time.Second / targetFPS

	// maxDelta caps the per-frame delta so a stalled frame or a resumed
	// pause cannot inject a huge movement step.
	maxDelta = 50 * time.Millisecond
)

// Player.
const (
	playerLerpRate  = 10.0 // Exponential smoothing rate toward target x (1/s)
	playerWidthFrac = 0.09 // Ship width as fraction of viewport width
	playerMinWidth  = 7.0
	keyboardNudge   = 70.0 // Target speed for arrow-key movement (px/s)
)

// Bullets.
const (
	fireInterval = 120 * time.Millisecond
	bulletSpeed  = 95.0 // Upward, px/s
	bulletRadius = 0.8
)

// Explosion particles.
const (
	burstCountMin    = 12
	burstCountRand   = 11 // count in [12, 22]
	burstSpeedMin    = 50.0
	burstSpeedRand   = 200.0 // speed in [50, 250)
	particleLifeMin  = 0.35
	particleLifeRand = 0.45
	particleGravity  = 60.0 // Downward drift, px/s²
	particleRadius   = 1.5  // Scales with remaining alpha when drawn
)

// Screen shake.
const (
	shakeDuration  = 0.22
	shakeIntensity = 1.8
)

// Text pieces.
const (
	pieceStep           = 2   // Sampling grid step in glyph pixels
	pieceAlphaThreshold = 128 // Out of 255
	pieceRadiusMin      = 0.7
	pieceRadiusRand     = 0.7
	glyphHeightFrac     = 0.42 // Glyph height as fraction of min(viewport dims)
	glyphCenterYFrac    = 0.38 // Vertical center of the label
)

// Stars.
const (
	starDensity = 0.0014 // Stars per pixel of viewport area
	starMin     = 12
)

// Win.
const overlayDelay = 600 * time.Millisecond
