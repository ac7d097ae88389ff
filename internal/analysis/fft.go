package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first len(data)/2 frequency
// bins. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// OrbitalPeriod estimates the dominant period of series in ticks, where
// consecutive samples are sampleEvery ticks apart. It returns 0 when the
// series is too short or does not oscillate.
func OrbitalPeriod(series []float64, sampleEvery int) float64 {
	n := len(series)
	if n < 4 {
		return 0
	}
	if sampleEvery <= 0 {
		sampleEvery = 1
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)

	peak, peakPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peakPower {
			peak, peakPower = k, ps[k]
		}
	}

	if peak == 0 || peakPower < 1e-9*float64(n) {
		return 0
	}

	return float64(n) / float64(peak) * float64(sampleEvery)
}
