// Package viz renders solved spectra in the terminal: asciigraph line
// charts of ln P(ln k) and lipgloss-styled panels for the spectral
// parameters at the pivot scale.
package viz
