package app

import "fmt"

// CommandKind tags a queued command.
type CommandKind int

const (
	CmdLoadScene CommandKind = iota // Rebuild every drawable at the current tessellation
	CmdOrbit                        // Turn the camera around its target
	CmdZoom                         // Move the camera toward or away from its target
)

func (k CommandKind) String() string {
	switch k {
	case CmdLoadScene:
		return "load-scene"
	case CmdOrbit:
		return "orbit"
	case CmdZoom:
		return "zoom"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is a deferred action applied at the start of the next tick.
type Command struct {
	Kind CommandKind

	// Orbit angles in radians
	Azimuth, Elevation float64
	// Zoom factor, negative moves closer
	Delta float64
}

// LoadScene returns a command that rebuilds the scene.
func LoadScene() Command {
	return Command{Kind: CmdLoadScene}
}

// Orbit returns a command that turns the camera.
func Orbit(azimuth, elevation float64) Command {
	return Command{Kind: CmdOrbit, Azimuth: azimuth, Elevation: elevation}
}

// Zoom returns a command that moves the camera along its view direction.
func Zoom(delta float64) Command {
	return Command{Kind: CmdZoom, Delta: delta}
}
