// Package background integrates the homogeneous inflationary
// background in conformal time: scale factor and inflaton field, with
// targeted stopping conditions, attractor search and pivot placement.
package background
