package spectrum

import "errors"

var (
	// ErrOutOfRange indicates a spectrum query outside the tabulated
	// wavenumber range for a parametrization that cannot extrapolate.
	ErrOutOfRange = errors.New("spectrum: wavenumber out of tabulated range")

	// ErrNegativeSpectrum indicates a non-positive power spectrum value
	// coming out of the perturbation integration.
	ErrNegativeSpectrum = errors.New("spectrum: non-positive spectrum")

	// ErrStepSizeCollapse indicates that the perturbation time step
	// fell below machine precision relative to the elapsed time.
	ErrStepSizeCollapse = errors.New("spectrum: time step below machine precision")

	// ErrExternalOutput indicates malformed or insufficient output from
	// the external spectrum command.
	ErrExternalOutput = errors.New("spectrum: bad external command output")

	// ErrUnknownMode indicates a query for a mode the table does not
	// carry.
	ErrUnknownMode = errors.New("spectrum: unknown mode")
)
