// Package catalog holds the fixed set of continuous-time transfer functions
// the tool knows how to discretize.
//
// Each [Element] pairs a symbolic H(s) with its named parameters and their
// defaults:
//
//   - [Get]: look up a single element by name
//   - [List]: all elements in stable order
//   - [Names]: element names for CLI completion and listings
//
// The catalogue covers the standard controller and plant blocks: the PID
// family (p, i, d, pi, pd, pid, pidt1), first and second order lags
// (pt1, pt2), dt1, it1 and the lead-lag compensator.
package catalog
