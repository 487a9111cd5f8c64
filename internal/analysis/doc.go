// Package analysis quantifies the frequency warping introduced by the
// bilinear mapping.
//
// The package compares the continuous-time response of an element against
// its discretized counterpart over a logarithmic grid below the Nyquist
// frequency:
//
//   - [ContinuousMagnitude]: |H(jw)| of the collected continuous ratio
//   - [Compare]: relative magnitude error across the band
//
// # Warping
//
// The bilinear mapping compresses the entire continuous frequency axis
// into the interval below pi/Ts, so magnitude matches degrade toward
// Nyquist. A [WarpReport] records where the match is worst:
//
//	rep, _ := analysis.Compare(d, binding, ts, 0, 200)
//	if rep.WorstErr > 0.1 {
//	    // Consider a smaller Ts or prewarping at the critical frequency
//	}
package analysis
