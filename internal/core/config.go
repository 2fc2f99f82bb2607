package core

// RuntimeConfig contains the viewer settings handed to the platform layer.
type RuntimeConfig struct {
	ScreenW     int    // Screen width in characters
	ScreenH     int    // Screen height in characters
	TickRate    int    // Animation ticks per second (default 30)
	Fingerprint string // Game fingerprint used to derive layout seeds
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}
