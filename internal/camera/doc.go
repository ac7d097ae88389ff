// Package camera implements the free-look observer: mouse-driven yaw and
// pitch, a movement basis derived from them, and the key-to-motion mapping.
//
// Everything here is a pure function of its arguments. The basis is never
// stored; callers recompute it from yaw and pitch every tick.
//
// Handedness follows mgl64's cross product. At yaw = 0 and pitch = 0 the
// basis is front (1,0,0), right (0,0,1), up (0,1,0).
package camera
