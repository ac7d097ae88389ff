// Package analysis provides orbit analysis tools for recorded runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a series
//   - [OrbitalPeriod]: dominant period of the separation series
//   - [LyapunovExponent]: sensitivity of the pair to a small perturbation
//   - [GeneratePhasePortrait]: separation against radial velocity
//   - [GeneratePoincareSection]: relative state at each z crossing
//
// # Period Detection
//
// A bound pair shows a clear peak in the spectrum of its separation:
//
//	period := analysis.OrbitalPeriod(separations, sampleEvery)
//	if period == 0 {
//	    // no oscillation in the window
//	}
package analysis
