package domain

// InteractionRange is the maximum Chebyshev distance from which a node can be worked.
const InteractionRange = 1

// MaxSpeedReduction caps the combined tool and level speed bonus.
const MaxSpeedReduction = 0.9

// Modes the engine can run in
const (
	ModeStandalone = "standalone"
	ModeOnline     = "online"
)
