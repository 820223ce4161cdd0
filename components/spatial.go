// Package components defines the ECS components attached to every agent.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Position represents an entity's world position.
type Position struct {
	X, Y, Z float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// Set overwrites the position from v.
func (p *Position) Set(v r3.Vec) { p.X, p.Y, p.Z = v.X, v.Y, v.Z }

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y, Z float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

// Set overwrites the velocity from u.
func (v *Velocity) Set(u r3.Vec) { v.X, v.Y, v.Z = u.X, u.Y, u.Z }

// Rotation is render-only orientation state and its per-tick spin.
type Rotation struct {
	X, Y, Z    float64
	VX, VY, VZ float64
}

// Spin advances the rotation by one tick of rotational velocity.
func (r *Rotation) Spin() {
	r.X += r.VX
	r.Y += r.VY
	r.Z += r.VZ
}
