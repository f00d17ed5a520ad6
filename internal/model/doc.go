// Package model defines the inflaton parametrizations driving the
// background evolution.
//
// A model is either a scalar potential V(phi) (quartic Taylor expansion or
// natural-inflation cosine) or a Hubble-rate function H(phi) (quartic Taylor
// expansion). Both are exposed behind the [Dynamics] interface, which is the
// single dispatch point for everything that depends on the parametrization:
// background derivatives, validity checks, and the first slow-roll
// parameter epsilon.
//
// Conventions follow the monotonic branch the solver supports: V > 0 with
// dV/dphi < 0, and H > 0 with dH/dphi < 0, so the field value grows with
// time. Field values are in Planck units, potentials in Mp^4, H in Mp.
package model
