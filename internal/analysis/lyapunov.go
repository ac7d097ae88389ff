package analysis

import (
	"math"

	"github.com/san-kum/binstar/internal/physics"
)

// LyapunovExponent estimates the largest Lyapunov exponent of the pair, in
// units of 1/tick, using the trajectory separation method. A perturbation
// is applied to the x position of a, both copies are stepped, and the
// divergence of the planar phase-space state is renormalized back to the
// perturbation size whenever it exceeds 1.
//
//	λ ≈ (1/t) * Σ ln(|δx(t_k)/δx(0)|)
func LyapunovExponent(a, b physics.Body, g float64, ticks int, perturbation float64) float64 {
	if ticks <= 0 || perturbation <= 0 {
		return 0
	}

	ap, bp := a, b
	ap.Position[0] += perturbation

	return divergenceRate(ticks, perturbation,
		func() float64 {
			a, b = physics.StepPair(a, b, g)
			ap, bp = physics.StepPair(ap, bp, g)
			return phaseDistance(a, b, ap, bp)
		},
		func(scale float64) {
			ap = renormalize(a, ap, scale)
			bp = renormalize(b, bp, scale)
		})
}

// divergenceRate sums ln(sep/d0) at every renormalization and once more
// for the final segment, then divides by the ticks stepped. A non-finite
// separation ends the estimate at the last finite tick.
func divergenceRate(ticks int, d0 float64, step func() float64, rescale func(scale float64)) float64 {
	sumLog := 0.0
	elapsed := 0
	last := d0

	for i := 0; i < ticks; i++ {
		sep := step()
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		elapsed++
		last = sep

		if sep > 1.0 {
			sumLog += math.Log(sep / d0)
			rescale(d0 / sep)
			last = d0
		}
	}

	if elapsed == 0 {
		return 0
	}
	if last > 0 {
		sumLog += math.Log(last / d0)
	}
	return sumLog / float64(elapsed)
}

func phaseDistance(a, b, ap, bp physics.Body) float64 {
	sum := 0.0
	for _, pair := range [][2]physics.Body{{a, ap}, {b, bp}} {
		dp := pair[1].Position.Sub(pair[0].Position)
		dv := pair[1].Velocity.Sub(pair[0].Velocity)
		sum += dp[0]*dp[0] + dp[2]*dp[2] + dv[0]*dv[0] + dv[2]*dv[2]
	}
	return math.Sqrt(sum)
}

func renormalize(ref, p physics.Body, scale float64) physics.Body {
	p.Position = ref.Position.Add(p.Position.Sub(ref.Position).Mul(scale))
	p.Velocity = ref.Velocity.Add(p.Velocity.Sub(ref.Velocity).Mul(scale))
	return p
}
