// Package systems contains the per-agent update rules applied by the
// simulation tick.
package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gaia/components"
)

// Integrate adds force to the velocity, applies damping and moves the agent.
// An agent that sinks below floorY is put back on the floor with its
// vertical velocity scaled by bounce.
func Integrate(pos *components.Position, vel *components.Velocity, force r3.Vec, damping, floorY, bounce float64) {
	v := r3.Scale(damping, r3.Add(vel.Vec(), force))
	vel.Set(v)
	pos.Set(r3.Add(pos.Vec(), v))

	if pos.Y < floorY {
		pos.Y = floorY
		vel.Y *= bounce
	}
}

// CenterPull returns a force of the given strength pointing from pos
// towards center. Zero at the centre itself.
func CenterPull(pos, center r3.Vec, strength float64) r3.Vec {
	outward := r3.Sub(pos, center)
	if r3.Norm(outward) == 0 {
		return r3.Vec{}
	}
	return r3.Scale(-strength, r3.Unit(outward))
}

// Steer returns the displacement from pos to target scaled by gain, and the
// distance between them.
func Steer(pos, target r3.Vec, gain float64) (r3.Vec, float64) {
	d := r3.Sub(target, pos)
	return r3.Scale(gain, d), r3.Norm(d)
}
