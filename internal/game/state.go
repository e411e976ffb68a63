package game

// Session status constants
const (
	StatusReady     = "READY"     // board built, no drop played yet
	StatusDropped   = "DROPPED"   // a trajectory has been handed to playback
	StatusCompleted = "COMPLETED" // round finished, awaiting reset
)
