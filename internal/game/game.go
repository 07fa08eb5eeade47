package game

// Version of the game.
// Bumping this number will eventually make clients reload the WASM.
//
// If you set this to an empty string, a random version number will be
// used, and force the reload of the WASM on every restart (the reload
// still only happens after the first page is loaded, so there is a delay).
// This is useful during development.
var Version = "v0.1.0"

// Default board shape and card geometry, in CSS pixels.
// A 4x4 grid gives 8 pairs, a comfortable solo game.
const (
	DefaultRows    = 4
	DefaultColumns = 4

	DefaultCardWidth  = 110.0
	DefaultCardHeight = 150.0
	DefaultGap        = 16.0
)
