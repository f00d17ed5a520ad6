// Package spectrum computes primordial power spectra: either directly
// from an analytic power-law parametrization, by integrating scalar
// and tensor perturbations through inflation, or by loading the output
// of an external command. Results are stored in a spline-interpolated
// table of ln P(ln k).
package spectrum
