// Package physics provides the gravitational model for a binary star system.
//
// The package defines one body type and the planar force law that advances it:
//
//   - [Body]: kinematic state of a single point mass
//   - [Body.Update]: planar inverse-square attraction plus a semi-implicit
//     Euler step with a time step of one tick
//   - [StepPair]: simultaneous update of both bodies from pre-tick snapshots
//   - [CenterOfMass]: mass-weighted x/z average of a set of bodies
//   - [Energy], [Momentum]: conserved quantities used for drift metrics
//
// # Planar Force Law
//
// Only the x and z separations enter the force. The vertical acceleration
// component is never written by [Body.Update], so a body keeps whatever
// vertical acceleration it started with.
//
// # Instability Boundary
//
// Coincident positions divide by zero. The resulting NaN or Inf propagates
// into velocity and position on every later tick and is not corrected here;
// use [Validate] before a run and [IsFinite] to detect it afterwards.
package physics
