package loop

// Terminal frontend constants. Simulation tunables live in config.Settings.

// Render area
const (
	MaxTermWidth  = 200 // Columns beyond this are left as a border
	MaxTermHeight = 60
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Minimap
const (
	minimapWidth   = 21  // Columns
	minimapHeight  = 7   // Terminal rows
	minimapSubRows = 14  // minimapHeight * 2 (half-block resolution)
	minimapRange   = 8.0 // World units from the player to the minimap edge
)

// Effects
const (
	deathParticleCount    = 24
	deathParticleSpeed    = 1.5 // World units per second
	deathParticleLifetime = 0.8 // Seconds
	winParticleCount      = 40
)

// MaxUsernameLength caps the name shown in the HUD.
const MaxUsernameLength = 16
