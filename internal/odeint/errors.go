package odeint

import "errors"

var (
	// ErrStepUnderflow indicates the adaptive step shrank below the
	// representable fraction of the integration interval.
	ErrStepUnderflow = errors.New("odeint: step size underflow")

	// ErrTooManySteps indicates the error control kept rejecting steps
	// without reaching the end of the interval.
	ErrTooManySteps = errors.New("odeint: too many steps")

	// ErrDimensionMismatch indicates a state vector whose length differs
	// from the workspace dimension.
	ErrDimensionMismatch = errors.New("odeint: state dimension does not match workspace")
)
